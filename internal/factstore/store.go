// Package factstore defines where the analysis keeps the outcome of each
// target: its state, its frozen fact bundle once analyzed, and the error
// that stopped it otherwise.
//
// The store is written by the analysis workers and read by the workers of
// dependent targets, which fetch the bundles they merge. Implementations
// must be safe for concurrent use.
package factstore

import (
	"context"

	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/label"
)

// Store holds the per-target results of one analysis run.
type Store interface {
	// SetStatus records the state of a target. Unset targets are Pending.
	SetStatus(ctx context.Context, l label.Label, state dag.State) error
	GetStatus(ctx context.Context, l label.Label) (dag.State, error)

	// SetBundle records the frozen facts of an analyzed target.
	SetBundle(ctx context.Context, l label.Label, b *bundle.Bundle) error
	// GetBundle returns the bundle of a target, or false if it was never
	// analyzed.
	GetBundle(ctx context.Context, l label.Label) (*bundle.Bundle, bool, error)

	// SetError records why a target failed or was skipped.
	SetError(ctx context.Context, l label.Label, err error) error
	// GetError returns the recorded error, or nil.
	GetError(ctx context.Context, l label.Label) (error, error)

	// Labels returns every target with a recorded status, sorted by string
	// form.
	Labels(ctx context.Context) ([]label.Label, error)
}
