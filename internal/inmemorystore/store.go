package inmemorystore

import (
	"context"
	"sort"
	"sync"

	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/factstore"
	"github.com/specialistvlad/factgraph/internal/label"
)

// Store is an in-memory implementation of factstore.Store. Each target's
// state lives under its own key, so workers writing different targets do
// not contend.
type Store struct {
	states  sync.Map // label.Label -> dag.State
	bundles sync.Map // label.Label -> *bundle.Bundle
	errors  sync.Map // label.Label -> error
}

// New creates a new, empty store.
func New() factstore.Store {
	return &Store{}
}

func (s *Store) SetStatus(ctx context.Context, l label.Label, state dag.State) error {
	s.states.Store(l, state)
	return nil
}

// GetStatus returns dag.Pending for a target that has no status yet.
func (s *Store) GetStatus(ctx context.Context, l label.Label) (dag.State, error) {
	state, ok := s.states.Load(l)
	if !ok {
		return dag.Pending, nil
	}
	return state.(dag.State), nil
}

func (s *Store) SetBundle(ctx context.Context, l label.Label, b *bundle.Bundle) error {
	s.bundles.Store(l, b)
	return nil
}

func (s *Store) GetBundle(ctx context.Context, l label.Label) (*bundle.Bundle, bool, error) {
	b, ok := s.bundles.Load(l)
	if !ok {
		return nil, false, nil
	}
	return b.(*bundle.Bundle), true, nil
}

func (s *Store) SetError(ctx context.Context, l label.Label, err error) error {
	s.errors.Store(l, err)
	return nil
}

func (s *Store) GetError(ctx context.Context, l label.Label) (error, error) {
	err, ok := s.errors.Load(l)
	if !ok {
		return nil, nil
	}
	return err.(error), nil
}

func (s *Store) Labels(ctx context.Context) ([]label.Label, error) {
	var labels []label.Label
	s.states.Range(func(k, _ any) bool {
		labels = append(labels, k.(label.Label))
		return true
	})
	sort.Slice(labels, func(i, j int) bool { return labels[i].String() < labels[j].String() })
	return labels, nil
}
