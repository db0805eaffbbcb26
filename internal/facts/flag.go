package facts

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/factgraph/internal/bundle"
)

// Flag is a property of a transitive dependency tree. A flag is set when it
// is a member of the FLAG key.
type Flag int

const (
	// UsesCpp: C++ or Objective-C++ appears in some source file.
	UsesCpp Flag = iota
	// UsesSwift: Swift sources are present.
	UsesSwift
	// UsesFrameworks: the final bundle embeds frameworks.
	UsesFrameworks
	// HasWatch1Extension: a watchOS 1 extension is present.
	HasWatch1Extension
)

var flagNames = map[Flag]string{
	UsesCpp:            "USES_CPP",
	UsesSwift:          "USES_SWIFT",
	UsesFrameworks:     "USES_FRAMEWORKS",
	HasWatch1Extension: "HAS_WATCH1_EXTENSION",
}

// Flags lists every flag in declaration order.
func Flags() []Flag {
	return []Flag{UsesCpp, UsesSwift, UsesFrameworks, HasWatch1Extension}
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// ParseFlag accepts the canonical upper-case name in any case.
func ParseFlag(s string) (Flag, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, f := range Flags() {
		if flagNames[f] == want {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", s)
}

// HasFlag reports whether flag is set anywhere on b.
func HasFlag(b *bundle.Bundle, flag Flag) bool {
	return bundle.Get(b, FlagKey).Contains(flag)
}

// HasAssetCatalogs reports whether some target in the transitive tree
// declared asset catalogs.
func HasAssetCatalogs(b *bundle.Bundle) bool {
	return !bundle.Get(b, XcassetsDir).IsEmpty()
}
