package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/config"
	"github.com/specialistvlad/factgraph/internal/ctxlog"
	"github.com/specialistvlad/factgraph/internal/hclexpr"
	"github.com/specialistvlad/factgraph/internal/label"
)

// translateTarget converts a decoded target block into the agnostic model.
func (l *Loader) translateTarget(ctx context.Context, pkg, file string, tb *targetBlock) (*config.Target, error) {
	lbl, err := label.ParseRelative(tb.Name, pkg)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid target name: %w", file, err)
	}
	ctx, logger := ctxlog.With(ctx, "target", lbl.String())
	logger.Debug("Translating HCL target to internal config model.")

	t := &config.Target{
		Label:             lbl,
		File:              file,
		Deps:              tb.Deps,
		SealedDeps:        tb.SealedDeps,
		Flags:             tb.Flags,
		Includes:          tb.Includes,
		SystemIncludes:    tb.SystemIncludes,
		SdkFrameworks:     tb.SdkFrameworks,
		WeakSdkFrameworks: tb.WeakSdkFrameworks,
		SdkDylibs:         tb.SdkDylibs,
		FrameworkDirs:     tb.FrameworkDirs,
		Facts:             make(map[bundle.Tier]map[string]hcl.Expression),
	}
	if hclexpr.IsExprDefined(tb.Providers) {
		t.Providers = tb.Providers
	}

	facts, err := l.extractFactBlocks(ctx, tb.Remain)
	if err != nil {
		return nil, fmt.Errorf("%s: target %s: %w", file, lbl, err)
	}
	t.Facts = facts
	return t, nil
}

// extractFactBlocks reads the propagate, direct_only and sealed blocks of a
// target body. Each may appear at most once and holds only attributes.
func (l *Loader) extractFactBlocks(ctx context.Context, body hcl.Body) (map[bundle.Tier]map[string]hcl.Expression, error) {
	logger := ctxlog.FromContext(ctx)
	out := make(map[bundle.Tier]map[string]hcl.Expression)
	if body == nil {
		return out, nil
	}

	content, diags := body.Content(factBlocksSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	for _, hb := range factBlocksSchema.Blocks {
		block, diags := hclexpr.FindUniqueBlock(content.Blocks, hb.Type)
		if diags.HasErrors() {
			return nil, diags
		}
		if block == nil {
			continue
		}

		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		tier := factBlocks[hb.Type]
		exprs := make(map[string]hcl.Expression, len(attrs))
		for name, attr := range attrs {
			exprs[name] = attr.Expr
		}
		out[tier] = exprs
		logger.Debug("Collected fact expressions.", "tier", tier.String(), "count", len(exprs))
	}
	return out, nil
}
