package models

import "time"

// ExplorationMetadata is the visible-cost contract attached to every result,
// including partial ones.
type ExplorationMetadata struct {
	NodesReturned   int       `json:"nodes_returned"`
	DepthTraversed  int       `json:"depth_traversed"`
	NodesTraversed  int       `json:"nodes_traversed"`
	EdgesExamined   int       `json:"edges_examined"`
	ComputeTimeMs   int64     `json:"compute_time_ms"`
	ResourceCredits int       `json:"resource_credits"`
	Truncated       bool      `json:"truncated,omitempty"`
	QueriedAt       time.Time `json:"queried_at"`
}

// GraphView is the result of a neighborhood exploration. NeighborsByDepth is
// keyed by hop distance 1..depth; order within a bucket is BFS discovery
// order and is deterministic for a fixed edge ordering from the graph store.
type GraphView struct {
	Focus            Node                `json:"focus"`
	NeighborsByDepth map[int][]Node      `json:"neighbors_by_depth"`
	Edges            []Edge              `json:"edges"`
	Metadata         ExplorationMetadata `json:"metadata"`
}

// PathResult is the result of a pathfinding query.
type PathResult struct {
	Path          []string            `json:"path"`
	Edges         []Edge              `json:"edges"`
	Length        int                 `json:"length"`
	SemanticScore float64             `json:"semantic_score,omitempty"`
	Metadata      ExplorationMetadata `json:"metadata"`
}

// QueryCost is an advisory cost preview, computed fresh per call and never
// persisted. It does not consume rate-limit budget.
type QueryCost struct {
	EstimatedNodes      int    `json:"estimated_nodes"`
	EstimatedTimeMs     int64  `json:"estimated_time_ms"`
	ResourceCredits     int    `json:"resource_credits"`
	AttestationRequired string `json:"attestation_required,omitempty"`
	CanExecute          bool   `json:"can_execute"`
	BlockedReason       string `json:"blocked_reason,omitempty"`
}

// Blocked reasons reported in QueryCost.
const (
	BlockedRateLimit         = "rate-limit-exceeded"
	BlockedAttestation       = "insufficient-attestation"
	BlockedQueryTooExpensive = "query-too-expensive"
)
