package bridge

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a build file writes to a name that is not
// on the export allow-list.
var ErrUnknownKey = errors.New("unknown or non-exportable key")

// TypeMismatchError reports a value whose container or element type cannot
// be converted to what the key holds.
type TypeMismatchError struct {
	Key      string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value for %q must be %s, got %s", e.Key, e.Expected, e.Actual)
}

// ElementTypeError reports a provider list that is not a collection, or an
// element of it that is not a bundle.
type ElementTypeError struct {
	Actual string
}

func (e *ElementTypeError) Error() string {
	return fmt.Sprintf("providers must be a list of bundles, got %s", e.Actual)
}
