package hclexpr

import (
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey renders a traversal canonically, e.g. dep["//lib:a"].header.
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// scan returns the unique traversals of exprs ordered by TraversalKey and
// the sorted names of every function they call.
func scan(exprs ...hcl.Expression) ([]hcl.Traversal, []string) {
	byKey := make(map[string]hcl.Traversal)
	calls := make(map[string]struct{})

	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, t := range expr.Variables() {
			byKey[TraversalKey(t)] = t
		}
		if node, ok := expr.(hclsyntax.Node); ok {
			collectCalls(node, calls)
		}
	}

	keys := slices.Sorted(maps.Keys(byKey))
	refs := make([]hcl.Traversal, len(keys))
	for i, k := range keys {
		refs[i] = byKey[k]
	}
	return refs, slices.Sorted(maps.Keys(calls))
}

// collectCalls records the name of every function call below node.
// Variables() reports traversals only.
func collectCalls(node hclsyntax.Node, into map[string]struct{}) {
	hclsyntax.VisitAll(node, func(n hclsyntax.Node) hcl.Diagnostics {
		if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
			into[call.Name] = struct{}{}
		}
		return nil
	})
}
