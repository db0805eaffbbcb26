// Package report renders analysis results for people and scripts: the
// facts of a target, its export record, and the key catalog, each as YAML
// or aligned text.
package report
