package bridge

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	// FileType is the capsule type of a file artifact.
	FileType = cty.Capsule("file", reflect.TypeFor[facts.Artifact]())

	// BundleType is the capsule type of a frozen bundle.
	BundleType = cty.Capsule("bundle", reflect.TypeFor[bundle.Bundle]())
)

// capsules maps opaque Go element types to their capsule types.
var capsules = map[reflect.Type]cty.Type{
	reflect.TypeFor[*facts.Artifact](): FileType,
}

// BundleVal wraps b as a BundleType capsule.
func BundleVal(b *bundle.Bundle) cty.Value {
	return cty.CapsuleVal(BundleType, b)
}

// FileVal wraps a as a FileType capsule.
func FileVal(a *facts.Artifact) cty.Value {
	return cty.CapsuleVal(FileType, a)
}

// ElementType returns the cty type of one element of k. It reports false for
// element types that cannot cross the bridge.
func ElementType(k attrkey.AnyKey) (cty.Type, bool) {
	return ctyType(k.ElemType())
}

func ctyType(t reflect.Type) (cty.Type, bool) {
	if capsule, ok := capsules[t]; ok {
		return capsule, true
	}
	switch t.Kind() {
	case reflect.String:
		return cty.String, true
	case reflect.Bool:
		return cty.Bool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return cty.Number, true
	default:
		return cty.NilType, false
	}
}

// toCty converts one Go element to a cty value of type ty.
func toCty(elem any, ty cty.Type) (cty.Value, error) {
	if ty.IsCapsuleType() {
		return cty.CapsuleVal(ty, elem), nil
	}
	return gocty.ToCtyValue(elem, ty)
}

// fromCty converts a cty value, already converted to the key's cty type, to
// a Go value of type t.
func fromCty(v cty.Value, t reflect.Type) (any, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("null element")
	}
	if v.Type().IsCapsuleType() {
		enc := v.EncapsulatedValue()
		if reflect.TypeOf(enc) != t {
			return nil, fmt.Errorf("capsule holds %T, not %s", enc, t)
		}
		return enc, nil
	}
	ptr := reflect.New(t)
	if err := gocty.FromCtyValue(v, ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}
