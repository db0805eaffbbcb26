package inmemorystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/specialistvlad/factgraph/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetStatus(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := label.MustParse("//lib:core")

	status, err := s.GetStatus(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, dag.Pending, status)

	require.NoError(t, s.SetStatus(ctx, l, dag.Running))

	status, err = s.GetStatus(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, dag.Running, status)
}

func TestSetAndGetBundle(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := label.MustParse("//lib:core")

	b, ok, err := s.GetBundle(ctx, l)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)

	builder := bundle.NewBuilder()
	bundle.AddOwn(builder, facts.Define, "CORE=1")
	expected := builder.Freeze()
	require.NoError(t, s.SetBundle(ctx, l, expected))

	b, ok, err = s.GetBundle(ctx, l)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, expected, b)
}

func TestSetAndGetError(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := label.MustParse("//app")

	retrievedErr, err := s.GetError(ctx, l)
	require.NoError(t, err)
	assert.Nil(t, retrievedErr)

	expectedErr := errors.New("a test error occurred")
	require.NoError(t, s.SetError(ctx, l, expectedErr))

	retrievedErr, err = s.GetError(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, expectedErr, retrievedErr)
}

func TestLabels(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, raw := range []string{"//lib:b", "//app", "//lib:a"} {
		require.NoError(t, s.SetStatus(ctx, label.MustParse(raw), dag.Done))
	}
	require.NoError(t, s.SetBundle(ctx, label.MustParse("//other:x"), bundle.Empty()))

	labels, err := s.Labels(ctx)
	require.NoError(t, err)
	var got []string
	for _, l := range labels {
		got = append(got, l.String())
	}
	assert.Equal(t, []string{"//app:app", "//lib:a", "//lib:b"}, got)
}

// TestStore_ConcurrentAccess verifies that the store can be safely accessed by
// multiple goroutines simultaneously without data races or lost writes.
func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()
	numGoroutines := 100
	var wg sync.WaitGroup

	bundles := make([]*bundle.Bundle, numGoroutines)
	for i := range bundles {
		b := bundle.NewBuilder()
		bundle.AddOwn(b, facts.Define, fmt.Sprintf("N=%d", i))
		bundles[i] = b.Freeze()
	}
	labelFor := func(i int) label.Label { return label.New("pkg", fmt.Sprintf("t%d", i)) }

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			l := labelFor(i)
			_ = s.SetStatus(ctx, l, dag.Done)
			_ = s.SetBundle(ctx, l, bundles[i])
			_ = s.SetError(ctx, l, fmt.Errorf("error for target %d", i))
		}(i)
	}
	wg.Wait()

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			l := labelFor(i)

			status, err := s.GetStatus(ctx, l)
			assert.NoError(t, err)
			assert.Equal(t, dag.Done, status, "mismatched status for target %d", i)

			b, ok, err := s.GetBundle(ctx, l)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Same(t, bundles[i], b, "mismatched bundle for target %d", i)

			targetErr, err := s.GetError(ctx, l)
			assert.NoError(t, err)
			assert.EqualError(t, targetErr, fmt.Sprintf("error for target %d", i))
		}(i)
	}
	wg.Wait()

	labels, err := s.Labels(ctx)
	require.NoError(t, err)
	assert.Len(t, labels, numGoroutines)
}
