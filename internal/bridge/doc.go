// Package bridge adapts bundles to the dynamically typed values seen by
// build files. Values are go-cty values: fact collections are lists,
// file artifacts are the FileType capsule and whole bundles travel as the
// BundleType capsule.
//
// Only keys on the export allow-list of the registry cross the bridge in
// either direction.
package bridge
