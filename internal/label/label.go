// internal/label/label.go
package label

// Label identifies one target in the workspace.
type Label struct {
	// Package is the slash-separated directory of the build file, relative
	// to the workspace root. The root package is "".
	Package string
	Name    string
}

// New returns the label of target name in package pkg.
func New(pkg, name string) Label {
	return Label{Package: pkg, Name: name}
}

// String serializes the label into its canonical form.
func (l Label) String() string {
	return "//" + l.Package + ":" + l.Name
}

// Equal reports whether two labels name the same target.
func (l Label) Equal(other Label) bool {
	return l == other
}

// IsZero reports whether the label is unset.
func (l Label) IsZero() bool {
	return l == Label{}
}
