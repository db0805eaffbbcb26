package bridge

import (
	"fmt"

	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Writer adds dynamically typed values to a builder.
type Writer struct {
	Builder  *bundle.Builder
	Registry *attrkey.Registry
}

// NewWriter returns a writer for b that resolves names in reg.
func NewWriter(b *bundle.Builder, reg *attrkey.Registry) *Writer {
	return &Writer{Builder: b, Registry: reg}
}

// AddElements adds every element of value to the Propagated tier of the key
// exported as name.
func (w *Writer) AddElements(name string, value cty.Value) error {
	return w.AddElementsToTier(bundle.Propagated, name, value)
}

// AddElementsToTier adds every element of value to the given tier. value
// must be a list, set or tuple whose elements already have the key's element
// type; numbers and bools are not coerced to strings. Nothing is written
// unless every element matches.
func (w *Writer) AddElementsToTier(tier bundle.Tier, name string, value cty.Value) error {
	k, ok := w.Registry.LookupExport(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	elemTy, ok := ElementType(k)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	want := cty.List(elemTy)

	mismatch := func(actual string) error {
		return &TypeMismatchError{Key: name, Expected: want.FriendlyName(), Actual: actual}
	}

	if value.IsNull() {
		return mismatch("null")
	}
	ty := value.Type()
	if !ty.IsListType() && !ty.IsSetType() && !ty.IsTupleType() {
		return mismatch(ty.FriendlyName())
	}
	if !value.IsWhollyKnown() {
		return fmt.Errorf("value for %q is not known", name)
	}
	if !elementsAre(value, elemTy) {
		return mismatch(ty.FriendlyName())
	}

	converted, err := convert.Convert(value, want)
	if err != nil {
		return mismatch(ty.FriendlyName())
	}

	values := make([]any, 0, converted.LengthInt())
	for _, v := range converted.AsValueSlice() {
		e, err := fromCty(v, k.ElemType())
		if err != nil {
			return mismatch(fmt.Sprintf("%s (%v)", ty.FriendlyName(), err))
		}
		values = append(values, e)
	}
	return w.Builder.AddAny(tier, k, values...)
}

// AddProviders merges every bundle in value with MergePropagating. value
// must be a list, set or tuple of BundleType capsules.
func (w *Writer) AddProviders(value cty.Value) error {
	if value.IsNull() {
		return &ElementTypeError{Actual: "null"}
	}
	ty := value.Type()
	if !ty.IsListType() && !ty.IsSetType() && !ty.IsTupleType() {
		return &ElementTypeError{Actual: ty.FriendlyName()}
	}
	if !value.IsWhollyKnown() {
		return fmt.Errorf("providers value is not known")
	}

	children := make([]*bundle.Bundle, 0, value.LengthInt())
	for it := value.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || !v.Type().Equals(BundleType) {
			return &ElementTypeError{Actual: v.Type().FriendlyName()}
		}
		b, ok := v.EncapsulatedValue().(*bundle.Bundle)
		if !ok {
			return &ElementTypeError{Actual: fmt.Sprintf("%T", v.EncapsulatedValue())}
		}
		children = append(children, b)
	}
	w.Builder.MergePropagating(children...)
	return nil
}

// elementsAre reports whether every element of the collection value has
// type elemTy. An empty collection of unknown element type matches.
func elementsAre(value cty.Value, elemTy cty.Type) bool {
	ty := value.Type()
	if ty.IsTupleType() {
		for _, et := range ty.TupleElementTypes() {
			if !et.Equals(elemTy) {
				return false
			}
		}
		return true
	}
	et := ty.ElementType()
	if et.Equals(cty.DynamicPseudoType) {
		return value.LengthInt() == 0
	}
	return et.Equals(elemTy)
}
