package dag

import (
	"fmt"
	"sort"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Nodes returns every node ID, sorted.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dependencies returns the sorted IDs of the nodes that the given node
// depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.deps), nil
}

// Dependents returns the sorted IDs of the nodes that depend on the given
// node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.dependents), nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, naming a node involved in it. Nodes are visited in
// sorted order so the reported node is stable.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully visited, not on a cycle. temporary: on the current
	// recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}

		temporary[n.id] = true
		for _, id := range sortedIDs(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range sortedIDs(g.nodes) {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

// TopologicalOrder returns every node ID with each node after all of its
// dependencies. Ties are broken by ID, so the order is deterministic.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	remaining := make(map[string]int, len(g.nodes))
	var ready []string
	for id, n := range g.nodes {
		remaining[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var unlocked []string
		for depID := range g.nodes[id].dependents {
			remaining[depID]--
			if remaining[depID] == 0 {
				unlocked = append(unlocked, depID)
			}
		}
		if len(unlocked) > 0 {
			ready = append(ready, unlocked...)
			sort.Strings(ready)
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("cycle detected: %d of %d nodes could not be ordered", len(g.nodes)-len(order), len(g.nodes))
	}
	return order, nil
}

func sortedIDs(m map[string]*node) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
