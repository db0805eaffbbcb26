package nestedset

import "fmt"

// Order is the flattening discipline of a set.
type Order int

const (
	// Stable is used for facts whose relative order only affects output
	// determinism, such as defines or header files.
	Stable Order = iota
	// LinkOrder is used for link inputs, include search paths and linker
	// flags. A node's own elements always come before its dependencies'.
	LinkOrder
)

// String returns the lowercase name of the order.
func (o Order) String() string {
	switch o {
	case Stable:
		return "stable"
	case LinkOrder:
		return "link"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}
