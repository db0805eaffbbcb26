package dag

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/factgraph/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// ErrSkipped marks a node that never ran because a dependency failed or the
// run was canceled.
var ErrSkipped = errors.New("skipped")

// NodeFunc is the work done for one node. It runs only after every
// dependency of the node returned nil.
type NodeFunc func(ctx context.Context, id string) error

// Outcome is the final state of one node after a run.
type Outcome struct {
	State State
	Err   error
}

// Executor runs a NodeFunc over every node of a Graph in dependency order.
type Executor struct {
	graph      *Graph
	numWorkers int
	fn         NodeFunc

	nodes map[string]*runNode
	wg    sync.WaitGroup
}

// NewExecutor prepares an executor. A worker count below one is treated as
// one.
func NewExecutor(g *Graph, numWorkers int, fn NodeFunc) *Executor {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Executor{graph: g, numWorkers: numWorkers, fn: fn}
}

// prepare snapshots the graph into per-run nodes with fresh counters.
func (e *Executor) prepare() {
	e.graph.mutex.RLock()
	defer e.graph.mutex.RUnlock()

	e.nodes = make(map[string]*runNode, len(e.graph.nodes))
	for id := range e.graph.nodes {
		e.nodes[id] = &runNode{id: id}
	}
	for id, n := range e.graph.nodes {
		rn := e.nodes[id]
		for _, depID := range sortedIDs(n.deps) {
			rn.deps = append(rn.deps, e.nodes[depID])
		}
		for _, depID := range sortedIDs(n.dependents) {
			rn.dependents = append(rn.dependents, e.nodes[depID])
		}
		rn.depCount.Store(int32(len(rn.deps)))
	}
}

// Run executes the entire graph concurrently and returns an error if any
// node fails. The first failure cancels the run; nodes downstream of it are
// skipped. Run must not be called again before it returns.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if err := e.graph.DetectCycles(); err != nil {
		return err
	}
	e.prepare()
	if len(e.nodes) == 0 {
		return nil
	}

	readyChan := make(chan *runNode, len(e.nodes))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	roots := 0
	for _, id := range sortedKeys(e.nodes) {
		n := e.nodes[id]
		if n.depCount.Load() == 0 {
			readyChan <- n
			roots++
		}
	}
	logger.Debug("Found all root nodes.", "count", roots)

	e.wg.Add(len(e.nodes))

	group, groupCtx := errgroup.WithContext(runCtx)
	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		workerID := i
		group.Go(func() error {
			e.worker(groupCtx, readyChan, cancel, workerID)
			return nil
		})
	}

	e.wg.Wait()
	close(readyChan)
	_ = group.Wait()
	logger.Debug("All nodes settled.")

	var failedNodes []string
	var rootCause error
	for _, id := range sortedKeys(e.nodes) {
		n := e.nodes[id]
		if State(n.state.Load()) != Failed {
			continue
		}
		// A node that failed only because the run was canceled is a
		// symptom, not a cause.
		if errors.Is(n.err, context.Canceled) {
			continue
		}
		failedNodes = append(failedNodes, id)
		if rootCause == nil {
			rootCause = n.err
		}
	}
	if rootCause != nil {
		return fmt.Errorf("execution failed for %s: %w", strings.Join(failedNodes, ", "), rootCause)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// Outcome reports the final state of the node from the last run.
func (e *Executor) Outcome(id string) (Outcome, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return Outcome{}, false
	}
	return Outcome{State: State(n.state.Load()), Err: n.err}, true
}

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *runNode, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)

	for n := range readyChan {
		workerLogger := logger.With("workerID", workerID, "nodeID", n.id)

		if ctx.Err() != nil {
			n.settleOnce.Do(func() {
				workerLogger.Debug("Context canceled, skipping node.")
				n.state.Store(int32(Skipped))
				n.err = fmt.Errorf("%w: %w", ErrSkipped, context.Cause(ctx))
				e.wg.Done()
				e.skipDependents(ctx, n)
			})
			continue
		}

		n.state.Store(int32(Running))
		err := e.fn(ctx, n.id)
		if err != nil {
			n.settleOnce.Do(func() {
				workerLogger.Debug("Node failed.", "error", err)
				n.state.Store(int32(Failed))
				n.err = err
				cancel()
				e.wg.Done()
				e.skipDependents(ctx, n)
			})
			continue
		}

		n.settleOnce.Do(func() {
			n.state.Store(int32(Done))
			e.wg.Done()
		})
		for _, dependent := range n.dependents {
			if dependent.depCount.Add(-1) == 0 {
				readyChan <- dependent
			}
		}
	}
}

// skipDependents recursively marks all downstream nodes as skipped.
func (e *Executor) skipDependents(ctx context.Context, n *runNode) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range n.dependents {
		dependent.settleOnce.Do(func() {
			logger.Debug("Skipping dependent node due to upstream failure.", "nodeID", dependent.id, "dependency", n.id)
			dependent.state.Store(int32(Skipped))
			dependent.err = fmt.Errorf("%w due to upstream failure of '%s'", ErrSkipped, n.id)
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		})
	}
}

func sortedKeys(m map[string]*runNode) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
