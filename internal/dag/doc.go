// Package dag is the scheduling layer of the analysis. Graph holds the
// dependency structure between targets; Executor runs a function for every
// node once all of its dependencies have completed, on a fixed pool of
// workers.
//
// Edges point from a dependency to its dependent: AddEdge("lib", "app")
// means app depends on lib and runs after it.
package dag
