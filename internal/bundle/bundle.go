package bundle

import (
	"sort"

	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/nestedset"
)

// Bundle is the frozen, immutable snapshot of one target's facts.
type Bundle struct {
	tiers   [numTiers]map[attrkey.AnyKey]nestedset.AnySet
	exports map[string]nestedset.AnySet
}

// Empty returns a bundle with no facts.
func Empty() *Bundle {
	return NewBuilder().Freeze()
}

// Get returns every fact of k visible on b: the union of the Propagated,
// DirectOnly and Sealed sets, in the key's order. A missing key yields an
// empty set.
func Get[E comparable](b *Bundle, k *attrkey.Key[E]) *nestedset.Set[E] {
	return mustTyped(k, b.GetAny(k))
}

// TierSet returns the set of k held in a single tier.
func TierSet[E comparable](b *Bundle, tier Tier, k *attrkey.Key[E]) *nestedset.Set[E] {
	return mustTyped(k, b.Tier(tier, k))
}

// GetAny is the type-erased form of Get.
func (b *Bundle) GetAny(k attrkey.AnyKey) nestedset.AnySet {
	if b == nil {
		return k.Empty()
	}
	return union(k, b.tiers[Propagated][k], b.tiers[DirectOnly][k], b.tiers[Sealed][k])
}

// Tier returns the set of k held in one tier, or an empty set.
func (b *Bundle) Tier(tier Tier, k attrkey.AnyKey) nestedset.AnySet {
	if b == nil || tier < 0 || tier >= numTiers {
		return k.Empty()
	}
	if set, ok := b.tiers[tier][k]; ok {
		return set
	}
	return k.Empty()
}

// Keys returns every key with at least one fact in any tier, sorted by name.
func (b *Bundle) Keys() []attrkey.AnyKey {
	if b == nil {
		return nil
	}
	seen := make(map[attrkey.AnyKey]struct{})
	var keys []attrkey.AnyKey
	for _, tier := range b.tiers {
		for k := range tier {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name() < keys[j].Name() })
	return keys
}

// IsEmpty reports whether the bundle holds no facts at all.
func (b *Bundle) IsEmpty() bool {
	if b == nil {
		return true
	}
	for _, tier := range b.tiers {
		if len(tier) > 0 {
			return false
		}
	}
	return true
}

// Export returns the export record entry for name: the union of the
// Propagated and DirectOnly facts of the allow-listed key with that export
// name. Names that are unknown, not exportable, or without facts are not
// found.
func (b *Bundle) Export(name string) (nestedset.AnySet, bool) {
	if b == nil {
		return nil, false
	}
	set, ok := b.exports[name]
	return set, ok
}

// ExportNames returns the names present in the export record, sorted.
func (b *Bundle) ExportNames() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.exports))
	for name := range b.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func union(k attrkey.AnyKey, sets ...nestedset.AnySet) nestedset.AnySet {
	present := make([]nestedset.AnySet, 0, len(sets))
	for _, s := range sets {
		if s != nil {
			present = append(present, s)
		}
	}
	switch len(present) {
	case 0:
		return k.Empty()
	case 1:
		return present[0]
	default:
		return present[0].Union(present[1:]...)
	}
}

func mustTyped[E comparable](k *attrkey.Key[E], s nestedset.AnySet) *nestedset.Set[E] {
	typed, ok := nestedset.Typed[E](s)
	if !ok || typed == nil {
		panic("bundle: set stored under key " + k.Name() + " has the wrong element type")
	}
	return typed
}
