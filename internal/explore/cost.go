package explore

import (
	"context"
	"fmt"
	"math"

	"github.com/opencurricula/explorer/internal/models"
)

// EstimatorConfig holds the cost-model policy constants.
type EstimatorConfig struct {
	// PerNodeCostMs is the calibrated per-node traversal cost used for the
	// time estimate.
	PerNodeCostMs float64
	// CreditDivisor converts node counts to resource credits:
	// credits = ceil(nodes / CreditDivisor).
	CreditDivisor int
	// MaxEstimatedNodes is the hard ceiling above which a query is vetoed
	// before execution.
	MaxEstimatedNodes int
	// SampleSize bounds the number of direct neighbors probed when
	// extrapolating beyond depth 1.
	SampleSize int
}

// DefaultEstimatorConfig is the cost policy used when none is configured.
var DefaultEstimatorConfig = EstimatorConfig{
	PerNodeCostMs:     0.5,
	CreditDivisor:     10,
	MaxEstimatedNodes: 5000,
	SampleSize:        5,
}

// Estimator predicts the cost of an exploration query from a bounded
// sampling probe: the out-degree of the focus node and, for deeper queries,
// of a small sample of its direct neighbors. It never mutates rate-limit
// state and never touches the graph beyond the probe.
type Estimator struct {
	graph GraphAccessor
	cfg   EstimatorConfig
}

// NewEstimator creates an Estimator. Zero config fields fall back to
// DefaultEstimatorConfig values.
func NewEstimator(graph GraphAccessor, cfg EstimatorConfig) *Estimator {
	if cfg.PerNodeCostMs <= 0 {
		cfg.PerNodeCostMs = DefaultEstimatorConfig.PerNodeCostMs
	}

	if cfg.CreditDivisor <= 0 {
		cfg.CreditDivisor = DefaultEstimatorConfig.CreditDivisor
	}

	if cfg.MaxEstimatedNodes <= 0 {
		cfg.MaxEstimatedNodes = DefaultEstimatorConfig.MaxEstimatedNodes
	}

	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultEstimatorConfig.SampleSize
	}

	return &Estimator{graph: graph, cfg: cfg}
}

// Estimate probes the graph and extrapolates the visitation count for the
// query: estimatedNodes ≈ sum of avgDegree^d for d in 1..depth, capped by
// the query's max_nodes. Returns models.ErrNodeNotFound (wrapped) when the
// focus node does not exist.
func (e *Estimator) Estimate(ctx context.Context, q models.ExplorationQuery) (models.QueryCost, error) {
	if _, err := e.graph.GetNode(ctx, q.FocusID); err != nil {
		return models.QueryCost{}, fmt.Errorf("probing focus node: %w", err)
	}

	out, err := e.graph.OutgoingEdges(ctx, q.FocusID)
	if err != nil {
		return models.QueryCost{}, fmt.Errorf("probing focus out-degree: %w", err)
	}

	degrees := []int{len(out)}

	if q.Depth > 1 {
		sample := out
		if len(sample) > e.cfg.SampleSize {
			sample = sample[:e.cfg.SampleSize]
		}

		for _, edge := range sample {
			neighborOut, err := e.graph.OutgoingEdges(ctx, edge.Target)
			if err != nil {
				return models.QueryCost{}, fmt.Errorf("probing neighbor out-degree: %w", err)
			}

			degrees = append(degrees, len(neighborOut))
		}
	}

	total := 0
	for _, d := range degrees {
		total += d
	}
	avgDegree := float64(total) / float64(len(degrees))

	estimated := 1 // the focus node itself
	for d := 1; d <= q.Depth; d++ {
		level := int(math.Pow(avgDegree, float64(d)))
		if estimated > e.cfg.MaxEstimatedNodes || level > e.cfg.MaxEstimatedNodes {
			estimated = e.cfg.MaxEstimatedNodes + 1

			break
		}

		estimated += level
	}

	if q.MaxNodes > 0 && estimated > q.MaxNodes {
		estimated = q.MaxNodes
	}

	return models.QueryCost{
		EstimatedNodes:  estimated,
		EstimatedTimeMs: int64(math.Ceil(float64(estimated) * e.cfg.PerNodeCostMs)),
		ResourceCredits: e.Credits(estimated),
	}, nil
}

// TooExpensive reports whether an estimate exceeds the configured ceiling.
func (e *Estimator) TooExpensive(cost models.QueryCost) bool {
	return cost.EstimatedNodes > e.cfg.MaxEstimatedNodes
}

// Credits converts a node count to resource credits. Monotonic
// non-decreasing, never negative, and never zero for nonzero work.
func (e *Estimator) Credits(nodes int) int {
	if nodes <= 0 {
		return 0
	}

	return (nodes + e.cfg.CreditDivisor - 1) / e.cfg.CreditDivisor
}
