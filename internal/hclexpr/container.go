// Package hclexpr collects the fact expressions of a target and checks what
// they reference before they are evaluated.
package hclexpr

import (
	"sync"

	"github.com/hashicorp/hcl/v2"
)

// Container gathers the HCL expressions of one target and reports the
// variable traversals and function calls they contain. The scan runs once
// per batch of additions and is safe for concurrent readers.
type Container struct {
	mu    sync.Mutex
	exprs []hcl.Expression

	scanned bool
	refs    []hcl.Traversal
	calls   []string
}

// NewContainer creates a container holding exprs.
func NewContainer(exprs ...hcl.Expression) *Container {
	c := &Container{}
	c.Add(exprs...)
	return c
}

// Add appends exprs, ignoring nil ones, and invalidates the previous scan.
func (c *Container) Add(exprs ...hcl.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, expr := range exprs {
		if expr != nil {
			c.exprs = append(c.exprs, expr)
			c.scanned = false
		}
	}
}

// Len returns the number of expressions held.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.exprs)
}

// References returns the unique variable traversals, sorted by TraversalKey.
func (c *Container) References() []hcl.Traversal {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scanLocked()
	return c.refs
}

// CalledFunctions returns the unique names of called functions, sorted.
func (c *Container) CalledFunctions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scanLocked()
	return c.calls
}

func (c *Container) scanLocked() {
	if c.scanned {
		return
	}
	c.refs, c.calls = scan(c.exprs...)
	c.scanned = true
}
