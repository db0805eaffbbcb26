// Package analysis drives the fact propagation over a whole workspace.
//
// Every target becomes a node of a dag.Graph with an edge from each of its
// dependencies. Targets are analyzed in parallel once their dependencies
// are frozen: the dependencies' bundles are merged into a fresh builder,
// the target's own attributes and fact blocks are added, and the frozen
// bundle is written to the run's factstore.Store.
package analysis
