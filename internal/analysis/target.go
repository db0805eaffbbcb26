package analysis

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/factgraph/internal/bridge"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/config"
	"github.com/specialistvlad/factgraph/internal/ctxlog"
	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/specialistvlad/factgraph/internal/hclexpr"
	"github.com/zclconf/go-cty/cty"
)

// analyzeTarget builds and stores the bundle of t. Every dependency has
// already been frozen into res.Store.
func (a *Analyzer) analyzeTarget(ctx context.Context, res *Result, t *config.Target, deps []config.Dep) error {
	ctx, logger := ctxlog.With(ctx, "target", t.Label.String())
	if err := res.Store.SetStatus(ctx, t.Label, dag.Running); err != nil {
		return err
	}

	b := bundle.NewBuilder()
	depRecords := make(map[string]cty.Value, len(deps))
	depBundles := make(map[string]cty.Value, len(deps))
	for _, d := range deps {
		child, ok, err := res.Store.GetBundle(ctx, d.Label)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("target %s: dependency %s has no bundle", t.Label, d.Label)
		}
		if d.Sealed {
			b.MergeSealing(child)
		} else {
			b.MergePropagating(child)
		}
		depRecords[d.Raw] = bridge.Export(child).Object(a.registry)
		depBundles[d.Raw] = bridge.BundleVal(child)
	}

	if err := addNativeAttributes(b, t); err != nil {
		return err
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			hclexpr.VarDep:      objectOrEmpty(depRecords),
			hclexpr.VarProvider: objectOrEmpty(depBundles),
		},
		Functions: bridge.Functions(res.Artifacts, t.Label.Package),
	}
	w := bridge.NewWriter(b, a.registry)

	if hclexpr.IsExprDefined(t.Providers) {
		val, diags := t.Providers.Value(evalCtx)
		if diags.HasErrors() {
			return writeError(t, "providers", diags)
		}
		if err := w.AddProviders(val); err != nil {
			return writeError(t, "providers", err)
		}
	}

	for _, tier := range bundle.Tiers() {
		exprs := t.Facts[tier]
		names := make([]string, 0, len(exprs))
		for name := range exprs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			val, diags := exprs[name].Value(evalCtx)
			if diags.HasErrors() {
				return writeError(t, name, diags)
			}
			if err := w.AddElementsToTier(tier, name, val); err != nil {
				return writeError(t, name, err)
			}
		}
	}

	frozen := b.Freeze()
	if err := res.Store.SetBundle(ctx, t.Label, frozen); err != nil {
		return err
	}
	logger.Debug("Target analyzed.", "keys", len(frozen.Keys()), "exports", len(frozen.ExportNames()))
	return nil
}

// addNativeAttributes adds the typed attributes written directly on the
// target block to the Propagated tier.
func addNativeAttributes(b *bundle.Builder, t *config.Target) error {
	for _, raw := range t.Flags {
		f, err := facts.ParseFlag(raw)
		if err != nil {
			return fmt.Errorf("target %s: %w", t.Label, err)
		}
		bundle.AddOwn(b, facts.FlagKey, f)
	}

	pkgPaths := func(raws []string) []facts.PathFragment {
		out := make([]facts.PathFragment, 0, len(raws))
		for _, raw := range raws {
			if path.IsAbs(raw) {
				out = append(out, facts.PathFragment(path.Clean(raw)))
				continue
			}
			out = append(out, facts.PathFragment(path.Join(t.Label.Package, raw)))
		}
		return out
	}
	frameworks := func(names []string) []facts.Framework {
		out := make([]facts.Framework, 0, len(names))
		for _, name := range names {
			out = append(out, facts.Framework{Name: name})
		}
		return out
	}

	bundle.AddOwn(b, facts.Include, pkgPaths(t.Includes)...)
	bundle.AddOwn(b, facts.IncludeSystem, pkgPaths(t.SystemIncludes)...)
	bundle.AddOwn(b, facts.FrameworkDir, pkgPaths(t.FrameworkDirs)...)
	bundle.AddOwn(b, facts.SdkFramework, frameworks(t.SdkFrameworks)...)
	bundle.AddOwn(b, facts.WeakSdkFramework, frameworks(t.WeakSdkFrameworks)...)
	bundle.AddOwn(b, facts.SdkDylib, t.SdkDylibs...)
	return nil
}

func writeError(t *config.Target, name string, err error) error {
	bridgeWriteErrors.WithLabelValues(errorKind(err)).Inc()
	return fmt.Errorf("target %s: fact %q: %w", t.Label, name, err)
}

func objectOrEmpty(attrs map[string]cty.Value) cty.Value {
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}
