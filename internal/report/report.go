package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/label"
)

// Entry is the rendered set of one key.
type Entry struct {
	Key    string   `yaml:"key"`
	Order  string   `yaml:"order"`
	Values []string `yaml:"values"`
}

// Facts is the rendered view of one target.
type Facts struct {
	Target string  `yaml:"target"`
	View   string  `yaml:"view"`
	Facts  []Entry `yaml:"facts"`
}

// KeyInfo describes one registered key.
type KeyInfo struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Order  string `yaml:"order"`
	Export string `yaml:"export,omitempty"`
}

// BundleFacts renders every non-empty key of b, or only the key named
// only when it is set. Names match either the key name or its export name.
func BundleFacts(target label.Label, b *bundle.Bundle, only string) (*Facts, error) {
	out := &Facts{Target: target.String(), View: "facts"}
	found := only == ""
	for _, k := range b.Keys() {
		if only != "" && !matches(k, only) {
			continue
		}
		found = true
		set := b.GetAny(k)
		out.Facts = append(out.Facts, Entry{
			Key:    k.Name(),
			Order:  set.Order().String(),
			Values: render(set.Elements()),
		})
	}
	if !found {
		return nil, fmt.Errorf("target %s has no facts for key %q", target, only)
	}
	return out, nil
}

// ExportRecord renders the export record of b, keyed by export name.
func ExportRecord(target label.Label, b *bundle.Bundle) *Facts {
	out := &Facts{Target: target.String(), View: "exports"}
	for _, name := range b.ExportNames() {
		set, _ := b.Export(name)
		out.Facts = append(out.Facts, Entry{
			Key:    name,
			Order:  set.Order().String(),
			Values: render(set.Elements()),
		})
	}
	return out
}

// Keys describes every key of reg in registration order.
func Keys(reg *attrkey.Registry) []KeyInfo {
	all := reg.All()
	out := make([]KeyInfo, 0, len(all))
	for _, k := range all {
		export, _ := k.ExportName()
		out = append(out, KeyInfo{
			Name:   k.Name(),
			Type:   k.ElemType().String(),
			Order:  k.Order().String(),
			Export: export,
		})
	}
	return out
}

// SortKeys orders key descriptions by name.
func SortKeys(keys []KeyInfo) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
}

func matches(k attrkey.AnyKey, name string) bool {
	if strings.EqualFold(k.Name(), name) {
		return true
	}
	export, ok := k.ExportName()
	return ok && export == name
}

func render(elems []any) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, fmt.Sprint(e))
	}
	return out
}
