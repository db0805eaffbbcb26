package bridge

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/zclconf/go-cty/cty"
)

// Record is the read-only view of a bundle's export record.
type Record struct {
	values map[string]cty.Value
}

// Export converts the export record of b. It panics if the key catalog
// exported an element type the bridge has no cty type for.
func Export(b *bundle.Bundle) *Record {
	r := &Record{values: make(map[string]cty.Value)}
	for _, name := range b.ExportNames() {
		set, _ := b.Export(name)
		ty, ok := ctyType(set.ElemType())
		if !ok {
			panic(fmt.Sprintf("bridge: exported key %q has element type %s with no cty equivalent", name, set.ElemType()))
		}

		elems := set.Elements()
		vals := make([]cty.Value, 0, len(elems))
		for _, e := range elems {
			v, err := toCty(e, ty)
			if err != nil {
				panic(fmt.Sprintf("bridge: exported key %q: %v", name, err))
			}
			vals = append(vals, v)
		}
		r.values[name] = listVal(ty, vals)
	}
	return r
}

// Lookup returns the list exported under name. Names that are not registered,
// not exportable or without facts are not found.
func (r *Record) Lookup(name string) (cty.Value, bool) {
	if r == nil {
		return cty.NilVal, false
	}
	v, ok := r.values[name]
	return v, ok
}

// Names returns the names present in the record, sorted.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Object renders the record as a cty object with one attribute per
// exportable key of reg. Keys without facts are empty lists, so build
// files can read any exported name without checking for it first.
func (r *Record) Object(reg *attrkey.Registry) cty.Value {
	attrs := make(map[string]cty.Value)
	for _, k := range reg.Exported() {
		name, _ := k.ExportName()
		ty, ok := ElementType(k)
		if !ok {
			continue
		}
		if v, found := r.Lookup(name); found {
			attrs[name] = v
			continue
		}
		attrs[name] = cty.ListValEmpty(ty)
	}
	return cty.ObjectVal(attrs)
}

func listVal(ty cty.Type, vals []cty.Value) cty.Value {
	if len(vals) == 0 {
		return cty.ListValEmpty(ty)
	}
	return cty.ListVal(vals)
}
