package bundle

import "fmt"

// Tier is the propagation scope of a fact.
type Tier int

const (
	Propagated Tier = iota
	DirectOnly
	Sealed

	numTiers
)

// Tiers lists every tier in read order.
func Tiers() []Tier {
	return []Tier{Propagated, DirectOnly, Sealed}
}

func (t Tier) String() string {
	switch t {
	case Propagated:
		return "propagated"
	case DirectOnly:
		return "direct_only"
	case Sealed:
		return "sealed"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier is the inverse of Tier.String.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// MergeMode selects how a child bundle is folded into a builder.
type MergeMode int

const (
	Propagating MergeMode = iota
	Sealing
)

func (m MergeMode) String() string {
	switch m {
	case Propagating:
		return "propagating"
	case Sealing:
		return "sealing"
	default:
		return fmt.Sprintf("merge(%d)", int(m))
	}
}

// mergeTable maps, per merge mode, a tier of the child bundle to the tier of
// the target builder it is composed into. A child tier missing from a row is
// never read. Sealed appears in no row: sealed facts die where they were
// sealed.
var mergeTable = map[MergeMode]map[Tier]Tier{
	Propagating: {
		Propagated: Propagated,
		DirectOnly: Sealed,
	},
	Sealing: {
		Propagated: Sealed,
		DirectOnly: Sealed,
	},
}
