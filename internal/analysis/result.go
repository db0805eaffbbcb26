package analysis

import (
	"context"
	"fmt"

	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/factstore"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/specialistvlad/factgraph/internal/label"
)

// Result is the outcome of one analysis run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// Order lists every target with each after its dependencies.
	Order     []label.Label
	Store     factstore.Store
	Artifacts *facts.ArtifactFactory
}

// Bundle returns the frozen bundle of l. It fails for targets that are
// unknown or were not analyzed successfully.
func (r *Result) Bundle(ctx context.Context, l label.Label) (*bundle.Bundle, error) {
	b, ok, err := r.Store.GetBundle(ctx, l)
	if err != nil {
		return nil, err
	}
	if ok {
		return b, nil
	}

	state, err := r.Store.GetStatus(ctx, l)
	if err != nil {
		return nil, err
	}
	if state == dag.Pending {
		return nil, fmt.Errorf("target %s not found", l)
	}
	cause, err := r.Store.GetError(ctx, l)
	if err != nil {
		return nil, err
	}
	if cause == nil {
		return nil, fmt.Errorf("target %s was not analyzed (%s)", l, state)
	}
	return nil, fmt.Errorf("target %s was not analyzed (%s): %w", l, state, cause)
}

// Summary counts targets per final state.
func (r *Result) Summary(ctx context.Context) (map[dag.State]int, error) {
	out := make(map[dag.State]int)
	for _, l := range r.Order {
		state, err := r.Store.GetStatus(ctx, l)
		if err != nil {
			return nil, err
		}
		out[state]++
	}
	return out, nil
}
