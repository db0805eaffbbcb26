package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/specialistvlad/factgraph/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bundle returns the frozen bundle of the target named raw, failing the test
// if it was not analyzed.
func Bundle(t *testing.T, result *HarnessResult, raw string) *bundle.Bundle {
	t.Helper()
	require.NotNil(t, result.Result, "analysis produced no result: %v", result.Err)
	b, err := result.Result.Bundle(context.Background(), label.MustParse(raw))
	require.NoError(t, err)
	return b
}

// AssertFiles checks the exec paths of every fact of k visible on b.
func AssertFiles(t *testing.T, b *bundle.Bundle, k *attrkey.Key[*facts.Artifact], want ...string) {
	t.Helper()
	var got []string
	for _, a := range bundle.Get(b, k).ToList() {
		got = append(got, a.ExecPath())
	}
	assert.Equal(t, want, got, "facts of %s", k.Name())
}

// AssertState checks the final state of the target named raw.
func AssertState(t *testing.T, result *HarnessResult, raw string, want dag.State) {
	t.Helper()
	require.NotNil(t, result.Result)
	got, err := result.Result.Store.GetStatus(context.Background(), label.MustParse(raw))
	require.NoError(t, err)
	assert.Equal(t, want, got, "state of %s", raw)
}
