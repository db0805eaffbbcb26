// Package facts is the catalog of fact channels carried by Objective-C and
// Apple targets: the element types, the keys that hold them, and the export
// allow-list handed to build files.
//
// All keys live in Registry and are registered during package
// initialization. Callers never create keys of their own.
package facts
