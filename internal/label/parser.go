// internal/label/parser.go
package label

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches one package path segment or a target name.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+$`)

// isValidSegment rejects names that are technically matched but meaningless
// as a directory or target.
func isValidSegment(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	return segmentRegex.MatchString(s)
}

// Parse creates a Label from its absolute form, `//pkg:name` or `//pkg`.
func Parse(raw string) (Label, error) {
	if raw == "" {
		return Label{}, fmt.Errorf("label cannot be empty")
	}
	if !strings.HasPrefix(raw, "//") {
		return Label{}, fmt.Errorf("label %q must start with //", raw)
	}

	rest := strings.TrimPrefix(raw, "//")
	pkg, name, hasName := strings.Cut(rest, ":")

	if pkg != "" {
		for _, segment := range strings.Split(pkg, "/") {
			if segment == "" {
				return Label{}, fmt.Errorf("label %q contains an empty package segment", raw)
			}
			if !isValidSegment(segment) {
				return Label{}, fmt.Errorf("invalid package segment %q in label %q", segment, raw)
			}
		}
	}

	if !hasName {
		if pkg == "" {
			return Label{}, fmt.Errorf("label %q names no target", raw)
		}
		name = pkg[strings.LastIndex(pkg, "/")+1:]
	}
	if !isValidSegment(name) {
		return Label{}, fmt.Errorf("invalid target name %q in label %q", name, raw)
	}

	return Label{Package: pkg, Name: name}, nil
}

// ParseRelative parses raw, resolving `:name` and bare `name` against the
// package pkg.
func ParseRelative(raw, pkg string) (Label, error) {
	if strings.HasPrefix(raw, "//") {
		return Parse(raw)
	}
	name := strings.TrimPrefix(raw, ":")
	if !isValidSegment(name) {
		return Label{}, fmt.Errorf("invalid target name %q", raw)
	}
	return Label{Package: pkg, Name: name}, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// static tables.
func MustParse(raw string) Label {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}
