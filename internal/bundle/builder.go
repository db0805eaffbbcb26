package bundle

import (
	"fmt"

	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/nestedset"
)

// Builder accumulates the facts of one target.
type Builder struct {
	tiers  [numTiers]map[attrkey.AnyKey]nestedset.AnyBuilder
	frozen bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	b := &Builder{}
	for t := range b.tiers {
		b.tiers[t] = make(map[attrkey.AnyKey]nestedset.AnyBuilder)
	}
	return b
}

// AddOwn appends values to the Propagated tier.
func AddOwn[E comparable](b *Builder, k *attrkey.Key[E], values ...E) {
	Add(b, Propagated, k, values...)
}

// AddDirectOnly appends values that reach the immediate parent only.
func AddDirectOnly[E comparable](b *Builder, k *attrkey.Key[E], values ...E) {
	Add(b, DirectOnly, k, values...)
}

// AddSealed appends values that are visible on this target only.
func AddSealed[E comparable](b *Builder, k *attrkey.Key[E], values ...E) {
	Add(b, Sealed, k, values...)
}

// Add appends values to the given tier.
func Add[E comparable](b *Builder, tier Tier, k *attrkey.Key[E], values ...E) {
	if len(values) == 0 {
		return
	}
	typedBucket[E](b, tier, k).AddAll(values...)
}

// AddTransitive composes an existing set into the given tier of k.
func AddTransitive[E comparable](b *Builder, tier Tier, k *attrkey.Key[E], set *nestedset.Set[E]) {
	if set == nil {
		return
	}
	typedBucket[E](b, tier, k).AddTransitive(set)
}

// AddAny appends dynamically typed values. Every value must already have the
// key's element type; the export bridge performs the conversion.
func (b *Builder) AddAny(tier Tier, k attrkey.AnyKey, values ...any) error {
	bucket := b.bucket(tier, k)
	for _, v := range values {
		if err := bucket.AddAny(v); err != nil {
			return fmt.Errorf("key %s: %w", k.Name(), err)
		}
	}
	return nil
}

// AddTransitiveAny composes an erased set into the given tier of k.
func (b *Builder) AddTransitiveAny(tier Tier, k attrkey.AnyKey, set nestedset.AnySet) {
	if set == nil {
		return
	}
	b.bucket(tier, k).AddTransitiveAny(set)
}

// MergePropagating folds children in with Propagating semantics: their
// Propagated facts stay propagated, their DirectOnly facts become Sealed here.
func (b *Builder) MergePropagating(children ...*Bundle) {
	b.Merge(Propagating, children...)
}

// MergeSealing folds children in so that none of their facts travel further
// than this target.
func (b *Builder) MergeSealing(children ...*Bundle) {
	b.Merge(Sealing, children...)
}

// Merge folds every key of each child into b following mergeTable.
func (b *Builder) Merge(mode MergeMode, children ...*Bundle) {
	b.ensureMutable()
	row := mergeRow(mode)
	for _, child := range children {
		if child == nil {
			continue
		}
		for _, from := range Tiers() {
			to, read := row[from]
			if !read {
				continue
			}
			for k, set := range child.tiers[from] {
				b.bucket(to, k).AddTransitiveAny(set)
			}
		}
	}
}

// MergeKeyPropagating folds a single key of child with Propagating semantics.
func (b *Builder) MergeKeyPropagating(k attrkey.AnyKey, child *Bundle) {
	b.MergeKey(Propagating, k, child)
}

// MergeKeySealing folds a single key of child with Sealing semantics.
func (b *Builder) MergeKeySealing(k attrkey.AnyKey, child *Bundle) {
	b.MergeKey(Sealing, k, child)
}

// MergeKey folds a single key of child into b following mergeTable.
func (b *Builder) MergeKey(mode MergeMode, k attrkey.AnyKey, child *Bundle) {
	b.ensureMutable()
	if child == nil {
		return
	}
	row := mergeRow(mode)
	for _, from := range Tiers() {
		to, read := row[from]
		if !read {
			continue
		}
		if set, ok := child.tiers[from][k]; ok {
			b.bucket(to, k).AddTransitiveAny(set)
		}
	}
}

// Freeze builds the immutable bundle together with its export record. The
// builder cannot be used afterwards.
func (b *Builder) Freeze() *Bundle {
	b.ensureMutable()
	b.frozen = true

	out := &Bundle{exports: make(map[string]nestedset.AnySet)}
	for t := range b.tiers {
		out.tiers[t] = make(map[attrkey.AnyKey]nestedset.AnySet, len(b.tiers[t]))
		for k, kb := range b.tiers[t] {
			set := kb.BuildAny()
			if set.IsEmpty() {
				continue
			}
			out.tiers[t][k] = set
		}
	}

	// The export record never sees the Sealed tier.
	for _, t := range []Tier{Propagated, DirectOnly} {
		for k := range out.tiers[t] {
			name, ok := k.ExportName()
			if !ok {
				continue
			}
			if _, done := out.exports[name]; done {
				continue
			}
			out.exports[name] = union(k, out.tiers[Propagated][k], out.tiers[DirectOnly][k])
		}
	}
	return out
}

func (b *Builder) bucket(tier Tier, k attrkey.AnyKey) nestedset.AnyBuilder {
	b.ensureMutable()
	if tier < 0 || tier >= numTiers {
		panic(fmt.Sprintf("bundle: invalid tier %d", int(tier)))
	}
	kb, ok := b.tiers[tier][k]
	if !ok {
		kb = k.NewBuilder()
		b.tiers[tier][k] = kb
	}
	return kb
}

func typedBucket[E comparable](b *Builder, tier Tier, k *attrkey.Key[E]) *nestedset.Builder[E] {
	kb, ok := b.bucket(tier, k).(*nestedset.Builder[E])
	if !ok {
		panic(fmt.Sprintf("bundle: builder for key %s has the wrong element type", k.Name()))
	}
	return kb
}

func (b *Builder) ensureMutable() {
	if b.frozen {
		panic("bundle: builder already frozen")
	}
}

func mergeRow(mode MergeMode) map[Tier]Tier {
	row, ok := mergeTable[mode]
	if !ok {
		panic(fmt.Sprintf("bundle: unknown merge mode %s", mode))
	}
	return row
}
