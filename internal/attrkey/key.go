// Package attrkey defines the typed channel descriptors under which build
// facts are stored, and the registry that makes them globally unique.
//
// Keys are registered once at process start and never mutated. Two keys are
// equal only if they are the same *Key; the name is for humans and for the
// export bridge, not for identity.
package attrkey

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/factgraph/internal/nestedset"
)

// Opaque marks element types that the export bridge may hand out as opaque
// handles (file artifacts). It is implemented on the pointer type.
type Opaque interface {
	OpaqueHandle()
}

// AnyKey is the type-erased view of a *Key[E].
type AnyKey interface {
	Name() string
	Order() nestedset.Order
	// ExportName returns the bridge name and whether the key is exportable.
	ExportName() (string, bool)
	ElemType() reflect.Type
	NewBuilder() nestedset.AnyBuilder
	Empty() nestedset.AnySet
}

// Key is the descriptor of one fact channel with element type E.
type Key[E comparable] struct {
	name       string
	order      nestedset.Order
	exportName string
}

var _ AnyKey = (*Key[string])(nil)

func (k *Key[E]) Name() string {
	return k.name
}

func (k *Key[E]) Order() nestedset.Order {
	return k.order
}

func (k *Key[E]) ExportName() (string, bool) {
	return k.exportName, k.exportName != ""
}

func (k *Key[E]) ElemType() reflect.Type {
	return reflect.TypeFor[E]()
}

// NewBuilder returns an empty set builder with the key's order.
func (k *Key[E]) NewBuilder() nestedset.AnyBuilder {
	return nestedset.NewBuilder[E](k.order)
}

// Empty returns an empty set with the key's order.
func (k *Key[E]) Empty() nestedset.AnySet {
	return nestedset.Empty[E](k.order)
}

// EmptySet is the typed counterpart of Empty.
func (k *Key[E]) EmptySet() *nestedset.Set[E] {
	return nestedset.Empty[E](k.order)
}

func (k *Key[E]) String() string {
	return fmt.Sprintf("%s(%s, %s)", k.name, reflect.TypeFor[E](), k.order)
}

// exportable reports whether t may cross the export bridge: primitives and
// opaque handles only. Structured element types never do.
func exportable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Pointer:
		return t.Implements(reflect.TypeFor[Opaque]())
	default:
		return false
	}
}
