// Package config defines the format-agnostic model of a workspace's build
// files and the Loader interface that produces it.
//
// The Model is the single input of the analysis package. Concrete loaders,
// such as the HCL one, live in separate packages.
package config
