package analysis

import (
	"errors"

	"github.com/hashicorp/hcl/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/factgraph/internal/bridge"
)

var (
	// targetsAnalyzed counts targets by how their analysis ended.
	// Labels: outcome (done, failed, skipped)
	targetsAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "factgraph",
		Subsystem: "analysis",
		Name:      "targets_total",
		Help:      "Targets analyzed, by outcome",
	}, []string{"outcome"})

	// bridgeWriteErrors counts rejected fact writes.
	// Labels: kind (unknown_key, type_mismatch, element_type, eval, other)
	bridgeWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "factgraph",
		Subsystem: "bridge",
		Name:      "write_errors_total",
		Help:      "Fact writes rejected by the export bridge, by kind",
	}, []string{"kind"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "factgraph",
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "Wall time of a whole analysis run",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})
)

// errorKind classifies a fact write error for bridgeWriteErrors.
func errorKind(err error) string {
	var mismatch *bridge.TypeMismatchError
	var elem *bridge.ElementTypeError
	var diags hcl.Diagnostics
	switch {
	case errors.Is(err, bridge.ErrUnknownKey):
		return "unknown_key"
	case errors.As(err, &mismatch):
		return "type_mismatch"
	case errors.As(err, &elem):
		return "element_type"
	case errors.As(err, &diags):
		return "eval"
	default:
		return "other"
	}
}
