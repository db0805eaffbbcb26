package nestedset

import (
	"fmt"
	"reflect"
)

// AnySet is the type-erased view of a *Set[E]. It lets callers keep sets of
// different element types in one map and recover the concrete type only at
// the read boundary.
type AnySet interface {
	Order() Order
	IsEmpty() bool
	Len() int
	Elements() []any
	ElemType() reflect.Type
	Union(others ...AnySet) AnySet
}

// AnyBuilder is the type-erased view of a *Builder[E].
type AnyBuilder interface {
	Order() Order
	IsEmpty() bool
	ElemType() reflect.Type
	// AddAny appends v as an own element. It fails if v is not an E.
	AddAny(v any) error
	// AddTransitiveAny composes s as a child. s must be a *Set[E]; anything
	// else is a programming error and panics.
	AddTransitiveAny(s AnySet)
	BuildAny() AnySet
}

var (
	_ AnySet     = (*Set[string])(nil)
	_ AnyBuilder = (*Builder[string])(nil)
)

// Typed recovers the concrete set behind an erased one. A nil AnySet yields
// (nil, true) so callers can treat "absent" uniformly.
func Typed[E comparable](s AnySet) (*Set[E], bool) {
	if s == nil {
		return nil, true
	}
	typed, ok := s.(*Set[E])
	return typed, ok
}

func mustTyped[E comparable](s AnySet) *Set[E] {
	typed, ok := s.(*Set[E])
	if !ok {
		panic(fmt.Sprintf("nestedset: element type mismatch: want set of %s, got set of %s",
			reflect.TypeFor[E](), s.ElemType()))
	}
	return typed
}
