package nestedset

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Set is an immutable, deduplicated, ordered collection of E.
type Set[E comparable] struct {
	order    Order
	direct   []E
	children []*Set[E]

	flattenOnce sync.Once
	flat        []E
}

// New composes a set from its own elements and a sequence of child sets.
//
// Nil and empty children are dropped, a child supplied twice is kept once,
// and a composition with no own elements and a single remaining child returns
// that child itself. The direct slice is copied; children are shared.
func New[E comparable](order Order, direct []E, children ...*Set[E]) *Set[E] {
	kept := make([]*Set[E], 0, len(children))
	seen := make(map[*Set[E]]struct{}, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.order != order {
			panic(fmt.Sprintf("nestedset: cannot compose a %s set into a %s set", child.order, order))
		}
		if child.IsEmpty() {
			continue
		}
		if _, dup := seen[child]; dup {
			continue
		}
		seen[child] = struct{}{}
		kept = append(kept, child)
	}

	if len(direct) == 0 && len(kept) == 1 {
		return kept[0]
	}

	return &Set[E]{
		order:    order,
		direct:   slices.Clone(direct),
		children: kept,
	}
}

// Empty returns a set with no elements.
func Empty[E comparable](order Order) *Set[E] {
	return &Set[E]{order: order}
}

// Of is shorthand for a set holding only the given elements.
func Of[E comparable](order Order, elems ...E) *Set[E] {
	return New(order, elems)
}

// Order returns the flattening discipline of the set.
func (s *Set[E]) Order() Order {
	return s.order
}

// IsEmpty reports whether the set has no elements. It never flattens.
func (s *Set[E]) IsEmpty() bool {
	return len(s.direct) == 0 && len(s.children) == 0
}

// Len returns the number of distinct elements.
func (s *Set[E]) Len() int {
	return len(s.list())
}

// ToList returns the flattened, deduplicated elements in order. The returned
// slice is a copy and may be modified by the caller.
func (s *Set[E]) ToList() []E {
	return slices.Clone(s.list())
}

// Contains reports whether e is an element of the set.
func (s *Set[E]) Contains(e E) bool {
	return slices.Contains(s.list(), e)
}

// Elements returns the flattened elements as a slice of any.
func (s *Set[E]) Elements() []any {
	list := s.list()
	out := make([]any, len(list))
	for i, e := range list {
		out[i] = e
	}
	return out
}

// ElemType returns the reflected element type.
func (s *Set[E]) ElemType() reflect.Type {
	return reflect.TypeFor[E]()
}

// Union composes s with the given sets, all of which must hold E and share
// the order of s. The result has no own elements.
func (s *Set[E]) Union(others ...AnySet) AnySet {
	children := make([]*Set[E], 0, len(others)+1)
	children = append(children, s)
	for _, other := range others {
		children = append(children, mustTyped[E](other))
	}
	return New(s.order, nil, children...)
}

// String renders the set for debugging.
func (s *Set[E]) String() string {
	return fmt.Sprintf("%s%v", s.order, s.list())
}

// list returns the memoized flattened elements without copying.
func (s *Set[E]) list() []E {
	s.flattenOnce.Do(func() {
		s.flat = s.flatten()
	})
	return s.flat
}

// flatten walks the composition depth-first: own elements first, then the
// children in supplied order. A child already walked is skipped because every
// one of its elements has been emitted. Children's own memoized lists are not
// populated, so only sets that are actually read pay for a flat copy.
func (s *Set[E]) flatten() []E {
	if len(s.children) == 0 && len(s.direct) == 0 {
		return nil
	}

	out := make([]E, 0, len(s.direct))
	seenElems := make(map[E]struct{}, len(s.direct))
	visited := make(map[*Set[E]]struct{})

	var walk func(set *Set[E])
	walk = func(set *Set[E]) {
		if _, done := visited[set]; done {
			return
		}
		visited[set] = struct{}{}

		for _, e := range set.direct {
			if _, dup := seenElems[e]; dup {
				continue
			}
			seenElems[e] = struct{}{}
			out = append(out, e)
		}
		for _, child := range set.children {
			walk(child)
		}
	}
	walk(s)

	return out
}
