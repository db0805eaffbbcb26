package hclexpr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Variables visible to fact expressions.
const (
	// VarDep maps each declared dependency to its export record.
	VarDep = "dep"
	// VarProvider maps each declared dependency to its whole bundle.
	VarProvider = "provider"
)

// Scope names everything a target's expressions may reference.
type Scope struct {
	deps      map[string]struct{}
	exports   map[string]struct{}
	functions map[string]struct{}
}

// NewScope builds a scope from declared dependency strings, exported key
// names and function names.
func NewScope(deps, exports, functions []string) Scope {
	return Scope{
		deps:      toSet(deps),
		exports:   toSet(exports),
		functions: toSet(functions),
	}
}

// Validate checks every reference and call in c against s.
func (c *Container) Validate(s Scope) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, t := range c.References() {
		diags = append(diags, s.checkTraversal(t)...)
	}
	for _, fn := range c.CalledFunctions() {
		if _, ok := s.functions[fn]; !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown function",
				Detail:   fmt.Sprintf("There is no function named %q. Available: %s.", fn, strings.Join(sortedKeys(s.functions), ", ")),
			})
		}
	}
	return diags
}

func (s Scope) checkTraversal(t hcl.Traversal) hcl.Diagnostics {
	rng := t.SourceRange()
	fail := func(summary, detail string) hcl.Diagnostics {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  summary,
			Detail:   detail,
			Subject:  &rng,
		}}
	}

	root := t.RootName()
	if root != VarDep && root != VarProvider {
		return fail("Unknown variable", fmt.Sprintf("Only %q and %q may be referenced, not %q.", VarDep, VarProvider, root))
	}
	if len(t) < 2 {
		return fail("Missing dependency", fmt.Sprintf("%q must be indexed by a declared dependency, e.g. %s[\":lib\"].", root, root))
	}

	dep, ok := stepName(t[1])
	if !ok {
		return fail("Invalid dependency reference", "Dependencies are selected with a literal string.")
	}
	if _, declared := s.deps[dep]; !declared {
		return fail("Undeclared dependency", fmt.Sprintf("%q is not listed in deps or sealed_deps.", dep))
	}

	if root == VarDep && len(t) > 2 {
		name, ok := stepName(t[2])
		if !ok {
			return fail("Invalid key reference", "Exported keys are selected by name.")
		}
		if _, exported := s.exports[name]; !exported {
			return fail("Unknown key", fmt.Sprintf("%q is not an exported key.", name))
		}
	}
	return nil
}

// stepName returns the attribute name or literal string index of step.
func stepName(step hcl.Traverser) (string, bool) {
	switch s := step.(type) {
	case hcl.TraverseAttr:
		return s.Name, true
	case hcl.TraverseIndex:
		if s.Key.IsKnown() && !s.Key.IsNull() && s.Key.Type().Equals(cty.String) {
			return s.Key.AsString(), true
		}
	}
	return "", false
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
