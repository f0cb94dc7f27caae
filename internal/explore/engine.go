package explore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opencurricula/explorer/internal/metrics"
	"github.com/opencurricula/explorer/internal/models"
)

// Config tunes the engine's cost policy.
type Config struct {
	Estimator EstimatorConfig
	// CostPreviewThreshold: queries with max_nodes unset or above this value
	// get an internal cost estimate before budget is committed.
	CostPreviewThreshold int
}

// DefaultConfig is the engine policy used when none is configured.
var DefaultConfig = Config{
	Estimator:            DefaultEstimatorConfig,
	CostPreviewThreshold: 200,
}

// Engine is the exploration façade. Per call it runs the attestation gate,
// rate-limit admission, optional cost preview, then traversal, and attaches
// cost/usage metadata to every result. Only rate-limit admission mutates any
// state; the graph is never written.
type Engine struct {
	gate      *Gate
	limits    *RateLimiter
	estimator *Estimator
	traverser *Traverser
	graph     GraphAccessor
	clock     Clock
	cfg       Config
	log       *logrus.Logger
}

// NewEngine wires an Engine from its collaborators. The background sweep of
// the rate limiter stops when ctx is cancelled.
func NewEngine(ctx context.Context, graph GraphAccessor, checker AttestationChecker, clock Clock, cfg Config, log *logrus.Logger) *Engine {
	if cfg.CostPreviewThreshold <= 0 {
		cfg.CostPreviewThreshold = DefaultConfig.CostPreviewThreshold
	}

	return &Engine{
		gate:      NewGate(checker),
		limits:    NewRateLimiter(ctx, clock),
		estimator: NewEstimator(graph, cfg.Estimator),
		traverser: NewTraverser(graph),
		graph:     graph,
		clock:     clock,
		cfg:       cfg,
		log:       log,
	}
}

// Explore runs a bounded-depth neighborhood exploration for the caller.
func (e *Engine) Explore(ctx context.Context, callerID string, q models.ExplorationQuery) (*models.GraphView, error) {
	if err := q.Validate(); err != nil {
		return nil, e.reject(KindExploration, err)
	}

	tier, maxDepth, err := e.gate.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"caller_id": callerID,
		"tier":      tier,
		"focus_id":  q.FocusID,
		"depth":     q.Depth,
	}).Debug("explore")

	if err := checkDepth(tier, maxDepth, q.Depth); err != nil {
		return nil, e.reject(KindExploration, err)
	}

	// Verify the focus exists before committing budget, the same probe the
	// estimator would issue.
	if _, err := e.graph.GetNode(ctx, q.FocusID); err != nil {
		return nil, e.reject(KindExploration, translateNotFound(err, "focus node "+q.FocusID))
	}

	if q.MaxNodes == 0 || q.MaxNodes > e.cfg.CostPreviewThreshold {
		cost, err := e.estimator.Estimate(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("estimating query cost: %w", err)
		}

		if e.estimator.TooExpensive(cost) {
			return nil, e.reject(KindExploration, &models.ExplorationError{
				Code:    models.ErrCodeQueryTooExpensive,
				Message: "estimated node count exceeds the configured ceiling; narrow the query or set max_nodes",
				Cost:    &cost,
			})
		}
	}

	status, ok := e.limits.Admit(callerID, tier, KindExploration)
	if !ok {
		metrics.RateLimitRejections.WithLabelValues(string(tier), string(KindExploration)).Inc()

		return nil, e.reject(KindExploration, &models.ExplorationError{
			Code:    models.ErrCodeRateLimitExceeded,
			Message: "hourly exploration budget exhausted",
			Status:  &status,
		})
	}

	start := e.clock.Now()

	view, err := e.traverser.Explore(ctx, q)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(string(KindExploration), "error").Inc()

		return nil, fmt.Errorf("traversing from %s: %w", q.FocusID, err)
	}

	e.finishMetadata(&view.Metadata, start)
	metrics.QueriesTotal.WithLabelValues(string(KindExploration), "ok").Inc()
	metrics.NodesTraversed.Observe(float64(view.Metadata.NodesTraversed))

	return view, nil
}

// EstimateExploreCost previews the cost of an exploration without executing
// it or consuming budget.
func (e *Engine) EstimateExploreCost(ctx context.Context, callerID string, q models.ExplorationQuery) (models.QueryCost, error) {
	if err := q.Validate(); err != nil {
		return models.QueryCost{}, err
	}

	tier, maxDepth, err := e.gate.Resolve(ctx, callerID)
	if err != nil {
		return models.QueryCost{}, err
	}

	cost, err := e.estimator.Estimate(ctx, q)
	if err != nil {
		return models.QueryCost{}, translateNotFound(err, "focus node "+q.FocusID)
	}

	cost.CanExecute = true

	switch {
	case checkDepth(tier, maxDepth, q.Depth) != nil:
		cost.CanExecute = false
		cost.BlockedReason = models.BlockedAttestation
		cost.AttestationRequired = string(RequiredAttestationForDepth(q.Depth))
	case !e.limits.Allows(callerID, tier, KindExploration):
		cost.CanExecute = false
		cost.BlockedReason = models.BlockedRateLimit
	case e.estimator.TooExpensive(cost):
		cost.CanExecute = false
		cost.BlockedReason = models.BlockedQueryTooExpensive
	}

	return cost, nil
}

// FindPath runs a pathfinding query for the caller.
func (e *Engine) FindPath(ctx context.Context, callerID string, q models.PathfindingQuery) (*models.PathResult, error) {
	if err := q.Validate(); err != nil {
		return nil, e.reject(KindPathfinding, err)
	}

	tier, _, err := e.gate.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"caller_id": callerID,
		"tier":      tier,
		"from_id":   q.FromID,
		"to_id":     q.ToID,
		"algorithm": q.Algorithm,
	}).Debug("find_path")

	canPath, err := e.gate.CanFindPaths(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !canPath {
		return nil, e.reject(KindPathfinding, &models.ExplorationError{
			Code:                models.ErrCodePathfindingUnauthorized,
			Message:             "pathfinding requires the path-creator attestation",
			RequiredAttestation: models.AttestationPathCreator,
		})
	}

	for _, id := range []string{q.FromID, q.ToID} {
		if _, err := e.graph.GetNode(ctx, id); err != nil {
			return nil, e.reject(KindPathfinding, translateNotFound(err, "node "+id))
		}
	}

	status, ok := e.limits.Admit(callerID, tier, KindPathfinding)
	if !ok {
		metrics.RateLimitRejections.WithLabelValues(string(tier), string(KindPathfinding)).Inc()

		return nil, e.reject(KindPathfinding, &models.ExplorationError{
			Code:    models.ErrCodeRateLimitExceeded,
			Message: "hourly pathfinding budget exhausted",
			Status:  &status,
		})
	}

	start := e.clock.Now()

	result, err := e.traverser.FindPath(ctx, q)
	if err != nil {
		// NO_PATH_EXISTS still reports the work actually done.
		var ee *models.ExplorationError
		if errors.As(err, &ee) && ee.Metadata != nil {
			e.finishMetadata(ee.Metadata, start)
		}

		metrics.QueriesTotal.WithLabelValues(string(KindPathfinding), outcomeLabel(err)).Inc()

		return nil, err
	}

	e.finishMetadata(&result.Metadata, start)
	metrics.QueriesTotal.WithLabelValues(string(KindPathfinding), "ok").Inc()
	metrics.NodesTraversed.Observe(float64(result.Metadata.NodesTraversed))

	return result, nil
}

// GetRateLimitStatus reports the caller's remaining budget without consuming
// any.
func (e *Engine) GetRateLimitStatus(ctx context.Context, callerID string) (models.RateLimitStatus, error) {
	tier, _, err := e.gate.Resolve(ctx, callerID)
	if err != nil {
		return models.RateLimitStatus{}, err
	}

	return e.limits.Status(callerID, tier), nil
}

// finishMetadata stamps timing and credit fields on a result's metadata.
// Credits are charged on nodes actually traversed, so they are monotonic in
// work done even for partial results.
func (e *Engine) finishMetadata(meta *models.ExplorationMetadata, start time.Time) {
	meta.QueriedAt = start
	meta.ComputeTimeMs = e.clock.Now().Sub(start).Milliseconds()
	meta.ResourceCredits = e.estimator.Credits(meta.NodesTraversed)
}

// checkDepth enforces the depth ceiling. The unauthenticated tier permits no
// exploration at all, including depth 0.
func checkDepth(tier models.Tier, maxDepth, requested int) error {
	if tier == models.TierUnauthenticated {
		return &models.ExplorationError{
			Code:                models.ErrCodeDepthUnauthorized,
			Message:             "unauthenticated callers may not explore the graph",
			RequestedDepth:      requested,
			AllowedDepth:        0,
			RequiredAttestation: models.AttestationAuthenticated,
		}
	}

	if requested > maxDepth {
		return &models.ExplorationError{
			Code:                models.ErrCodeDepthUnauthorized,
			Message:             fmt.Sprintf("depth %d exceeds the caller's ceiling of %d", requested, maxDepth),
			RequestedDepth:      requested,
			AllowedDepth:        maxDepth,
			RequiredAttestation: RequiredAttestationForDepth(requested),
		}
	}

	return nil
}

// translateNotFound maps the store's not-found sentinel to the domain error.
func translateNotFound(err error, what string) error {
	if errors.Is(err, models.ErrNodeNotFound) {
		return &models.ExplorationError{
			Code:    models.ErrCodeResourceNotFound,
			Message: what + " does not exist",
		}
	}

	return err
}

// reject counts a gating rejection and passes the error through verbatim.
func (e *Engine) reject(kind QueryKind, err error) error {
	metrics.QueriesTotal.WithLabelValues(string(kind), outcomeLabel(err)).Inc()

	return err
}

// outcomeLabel maps an error to a low-cardinality metric label.
func outcomeLabel(err error) string {
	if code := models.ErrCodeOf(err); code != "" {
		return string(code)
	}

	return "error"
}
