// internal/label/doc.go

/*
Package label provides the structured form of target labels, the names
build files use to refer to targets.

The canonical format is `//package/path:name`. Two short forms are
accepted: `//package/path`, whose name is the last path segment, and
`:name` (or a bare `name`), which refers to a target in the current
package. The root package is written `//:name`.
*/
package label
