package config

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/factgraph/internal/bundle"
	"github.com/specialistvlad/factgraph/internal/label"
)

// Model is every target of a workspace, keyed by canonical label string.
type Model struct {
	Targets map[string]*Target
	// Files are the build files that were read, relative to the root.
	Files []string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Targets: make(map[string]*Target)}
}

// Add registers t. Two targets with the same label are an error.
func (m *Model) Add(t *Target) error {
	key := t.Label.String()
	if prev, dup := m.Targets[key]; dup {
		return fmt.Errorf("target %s is defined twice, in %s and %s", key, prev.File, t.File)
	}
	m.Targets[key] = t
	return nil
}

// Labels returns every target label, sorted.
func (m *Model) Labels() []string {
	out := make([]string, 0, len(m.Targets))
	for k := range m.Targets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Target is the format-agnostic representation of a `target` block.
type Target struct {
	Label label.Label
	File  string

	// Deps and SealedDeps are kept as written; ResolveDeps turns them into
	// labels.
	Deps       []string
	SealedDeps []string

	Flags             []string
	Includes          []string
	SystemIncludes    []string
	SdkFrameworks     []string
	WeakSdkFrameworks []string
	SdkDylibs         []string
	FrameworkDirs     []string

	// Providers is an expression yielding bundles to merge, or nil.
	Providers hcl.Expression

	// Facts holds the fact expressions of the propagate, direct_only and
	// sealed blocks, keyed by export name.
	Facts map[bundle.Tier]map[string]hcl.Expression
}

// Dep is one declared dependency.
type Dep struct {
	// Raw is the string as written in the build file.
	Raw    string
	Label  label.Label
	Sealed bool
}

// ResolveDeps resolves Deps followed by SealedDeps against the target's
// package.
func (t *Target) ResolveDeps() ([]Dep, error) {
	out := make([]Dep, 0, len(t.Deps)+len(t.SealedDeps))
	resolve := func(raws []string, sealed bool) error {
		for _, raw := range raws {
			l, err := label.ParseRelative(raw, t.Label.Package)
			if err != nil {
				return fmt.Errorf("target %s: dependency %q: %w", t.Label, raw, err)
			}
			out = append(out, Dep{Raw: raw, Label: l, Sealed: sealed})
		}
		return nil
	}
	if err := resolve(t.Deps, false); err != nil {
		return nil, err
	}
	if err := resolve(t.SealedDeps, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Expressions returns every expression of the target, for reference
// analysis.
func (t *Target) Expressions() []hcl.Expression {
	var out []hcl.Expression
	if t.Providers != nil {
		out = append(out, t.Providers)
	}
	for _, tier := range bundle.Tiers() {
		names := make([]string, 0, len(t.Facts[tier]))
		for name := range t.Facts[tier] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, t.Facts[tier][name])
		}
	}
	return out
}
