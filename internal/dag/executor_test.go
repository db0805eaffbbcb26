package dag

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/factgraph/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

// diamond builds base -> {left, right} -> top.
func diamond(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, id := range []string{"base", "left", "right", "top"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("base", "left"))
	require.NoError(t, g.AddEdge("base", "right"))
	require.NoError(t, g.AddEdge("left", "top"))
	require.NoError(t, g.AddEdge("right", "top"))
	return g
}

func TestExecutor_RunsInDependencyOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		g := diamond(t)

		var mu sync.Mutex
		finished := map[string]bool{}
		fn := func(_ context.Context, id string) error {
			deps, err := g.Dependencies(id)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			for _, d := range deps {
				assert.True(t, finished[d], "%s ran before its dependency %s", id, d)
			}
			finished[id] = true
			return nil
		}

		exec := NewExecutor(g, workers, fn)
		require.NoError(t, exec.Run(testCtx()))
		assert.Len(t, finished, 4)

		for _, id := range g.Nodes() {
			out, ok := exec.Outcome(id)
			require.True(t, ok)
			assert.Equal(t, Done, out.State)
			assert.NoError(t, out.Err)
		}
	}
}

func TestExecutor_FailureSkipsDependents(t *testing.T) {
	g := diamond(t)
	g.AddNode("island")

	boom := errors.New("boom")
	var ran atomic.Int32
	fn := func(_ context.Context, id string) error {
		ran.Add(1)
		if id == "left" {
			return boom
		}
		return nil
	}

	exec := NewExecutor(g, 1, fn)
	err := exec.Run(testCtx())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "execution failed for left: boom")

	out, _ := exec.Outcome("left")
	assert.Equal(t, Failed, out.State)

	out, _ = exec.Outcome("top")
	assert.Equal(t, Skipped, out.State)
	assert.ErrorIs(t, out.Err, ErrSkipped)
	assert.Contains(t, out.Err.Error(), "upstream failure of 'left'")

	out, _ = exec.Outcome("base")
	assert.Equal(t, Done, out.State)
}

func TestExecutor_ParentCancellation(t *testing.T) {
	g := New()
	g.AddNode("a")

	ctx, cancel := context.WithCancel(testCtx())
	cancel()

	called := false
	exec := NewExecutor(g, 2, func(context.Context, string) error {
		called = true
		return nil
	})
	err := exec.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	out, _ := exec.Outcome("a")
	assert.Equal(t, Skipped, out.State)
}

func TestExecutor_EmptyGraphAndCycles(t *testing.T) {
	exec := NewExecutor(New(), 2, func(context.Context, string) error { return nil })
	assert.NoError(t, exec.Run(testCtx()))

	g := New()
	g.AddNode("a")
	g.AddNode("b")
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))
	exec = NewExecutor(g, 2, func(context.Context, string) error { return nil })
	assert.ErrorContains(t, exec.Run(testCtx()), "cycle detected")

	_, ok := exec.Outcome("a")
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "unknown", State(42).String())
}
