package dag

import (
	"sync"
	"sync/atomic"
)

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	id string
	// deps holds the set of nodes that this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[string]*node
}

// State is the execution state of one node during a run.
type State int32

const (
	Pending State = iota
	Running
	Done
	Failed
	Skipped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// runNode is the per-run bookkeeping of one graph node.
type runNode struct {
	id         string
	deps       []*runNode
	dependents []*runNode

	depCount atomic.Int32
	state    atomic.Int32
	err      error
	// settleOnce guards the single transition out of Pending/Running.
	settleOnce sync.Once
}
