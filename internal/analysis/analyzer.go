package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/factgraph/internal/attrkey"
	"github.com/specialistvlad/factgraph/internal/bridge"
	"github.com/specialistvlad/factgraph/internal/config"
	"github.com/specialistvlad/factgraph/internal/ctxlog"
	"github.com/specialistvlad/factgraph/internal/dag"
	"github.com/specialistvlad/factgraph/internal/factstore"
	"github.com/specialistvlad/factgraph/internal/facts"
	"github.com/specialistvlad/factgraph/internal/hclexpr"
	"github.com/specialistvlad/factgraph/internal/inmemorystore"
)

// Analyzer runs the fact propagation over a config.Model.
type Analyzer struct {
	workers  int
	registry *attrkey.Registry
	newStore func() factstore.Store
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStore replaces the in-memory result store.
func WithStore(newStore func() factstore.Store) Option {
	return func(a *Analyzer) { a.newStore = newStore }
}

// New returns an analyzer using the given number of workers.
func New(workers int, opts ...Option) *Analyzer {
	a := &Analyzer{
		workers:  workers,
		registry: facts.Registry,
		newStore: inmemorystore.New,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// plan is the validated, resolved form of a model.
type plan struct {
	graph   *dag.Graph
	targets map[string]*config.Target
	deps    map[string][]config.Dep
}

// Run analyzes every target of m. Structural problems (unknown
// dependencies, cycles, invalid expressions) fail before any target is
// analyzed and return a nil Result. When a target fails, Run returns the
// partial Result together with the error.
func (a *Analyzer) Run(ctx context.Context, m *config.Model) (*Result, error) {
	start := time.Now()
	defer func() { runDuration.Observe(time.Since(start).Seconds()) }()

	runID := uuid.NewString()
	ctx, logger := ctxlog.With(ctx, "runID", runID)

	p, err := a.plan(m)
	if err != nil {
		return nil, err
	}
	ordered, err := p.graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:     runID,
		Store:     a.newStore(),
		Artifacts: facts.NewArtifactFactory(),
	}
	for _, id := range ordered {
		res.Order = append(res.Order, p.targets[id].Label)
	}

	logger.Info("Starting analysis.", "targets", len(ordered), "workers", a.workers)
	exec := dag.NewExecutor(p.graph, a.workers, func(ctx context.Context, id string) error {
		return a.analyzeTarget(ctx, res, p.targets[id], p.deps[id])
	})
	runErr := exec.Run(ctx)

	for _, id := range ordered {
		l := p.targets[id].Label
		out, ok := exec.Outcome(id)
		if !ok {
			continue
		}
		if err := res.Store.SetStatus(ctx, l, out.State); err != nil {
			return nil, err
		}
		if out.Err != nil {
			if err := res.Store.SetError(ctx, l, out.Err); err != nil {
				return nil, err
			}
		}
		targetsAnalyzed.WithLabelValues(out.State.String()).Inc()
	}

	if runErr != nil {
		logger.Error("Analysis failed.", "error", runErr)
		return res, runErr
	}
	logger.Info("Analysis finished.", "targets", len(ordered), "duration", time.Since(start))
	return res, nil
}

// plan resolves dependencies, builds the graph and validates every
// target's expressions.
func (a *Analyzer) plan(m *config.Model) (*plan, error) {
	p := &plan{
		graph:   dag.New(),
		targets: make(map[string]*config.Target, len(m.Targets)),
		deps:    make(map[string][]config.Dep, len(m.Targets)),
	}
	for _, id := range m.Labels() {
		p.graph.AddNode(id)
		p.targets[id] = m.Targets[id]
	}

	exports := make([]string, 0)
	for _, k := range a.registry.Exported() {
		name, _ := k.ExportName()
		exports = append(exports, name)
	}

	var diags hcl.Diagnostics
	for _, id := range m.Labels() {
		t := m.Targets[id]
		deps, err := t.ResolveDeps()
		if err != nil {
			return nil, err
		}
		p.deps[id] = deps

		raws := make([]string, 0, len(deps))
		for _, d := range deps {
			depID := d.Label.String()
			if !p.graph.Has(depID) {
				return nil, fmt.Errorf("target %s: unknown dependency %s", id, depID)
			}
			if err := p.graph.AddEdge(depID, id); err != nil {
				return nil, fmt.Errorf("target %s: %w", id, err)
			}
			raws = append(raws, d.Raw)
		}

		scope := hclexpr.NewScope(raws, exports, bridge.FunctionNames)
		diags = append(diags, hclexpr.NewContainer(t.Expressions()...).Validate(scope)...)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	if err := p.graph.DetectCycles(); err != nil {
		return nil, err
	}
	return p, nil
}
