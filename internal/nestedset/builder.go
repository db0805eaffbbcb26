package nestedset

import (
	"fmt"
	"reflect"
)

// Builder accumulates own elements and child sets for one set. Own elements
// always precede children in the built set, regardless of call order.
type Builder[E comparable] struct {
	order    Order
	direct   []E
	children []*Set[E]
}

// NewBuilder returns an empty builder for the given order.
func NewBuilder[E comparable](order Order) *Builder[E] {
	return &Builder[E]{order: order}
}

// Order returns the order of the sets this builder produces.
func (b *Builder[E]) Order() Order {
	return b.order
}

// IsEmpty reports whether nothing has been added yet.
func (b *Builder[E]) IsEmpty() bool {
	return len(b.direct) == 0 && len(b.children) == 0
}

// ElemType returns the reflected element type.
func (b *Builder[E]) ElemType() reflect.Type {
	return reflect.TypeFor[E]()
}

// Add appends an own element.
func (b *Builder[E]) Add(e E) *Builder[E] {
	b.direct = append(b.direct, e)
	return b
}

// AddAll appends own elements in order.
func (b *Builder[E]) AddAll(elems ...E) *Builder[E] {
	b.direct = append(b.direct, elems...)
	return b
}

// AddTransitive composes s as a child. Nil sets are ignored.
func (b *Builder[E]) AddTransitive(s *Set[E]) *Builder[E] {
	if s == nil {
		return b
	}
	if s.order != b.order {
		panic(fmt.Sprintf("nestedset: cannot add a %s set to a %s builder", s.order, b.order))
	}
	b.children = append(b.children, s)
	return b
}

// Build composes the accumulated elements and children into a set. The
// builder may keep being used afterwards without affecting the result.
func (b *Builder[E]) Build() *Set[E] {
	return New(b.order, b.direct, b.children...)
}

// AddAny implements AnyBuilder.
func (b *Builder[E]) AddAny(v any) error {
	e, ok := v.(E)
	if !ok {
		return fmt.Errorf("cannot add %T to a set of %s", v, reflect.TypeFor[E]())
	}
	b.Add(e)
	return nil
}

// AddTransitiveAny implements AnyBuilder.
func (b *Builder[E]) AddTransitiveAny(s AnySet) {
	if s == nil {
		return
	}
	b.AddTransitive(mustTyped[E](s))
}

// BuildAny implements AnyBuilder.
func (b *Builder[E]) BuildAny() AnySet {
	return b.Build()
}
