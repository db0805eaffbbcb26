package hclexpr

import (
	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock returns the block of the given type, or nil if there is
// none. More than one block of the type is an error.
func FindUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one \"" + name + "\" block is allowed per target.",
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}

	return found, diags
}

// IsExprDefined reports whether expr was written in the source. gohcl fills
// omitted optional expression fields with a zero-width placeholder, so a nil
// check is not enough.
func IsExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
