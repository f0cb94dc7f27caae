package client

import "time"

// Node represents a vertex in the content graph.
type Node struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Edge represents a directed, typed relationship between two nodes.
type Edge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Relation string  `json:"relation"`
	Weight   float64 `json:"weight,omitempty"`
}

// ExplorationMetadata reports the cost of a query, attached to every result.
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
// keyed by hop distance from the focus node.
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

// QueryCost is an advisory cost preview for an exploration query.
type QueryCost struct {
	EstimatedNodes      int    `json:"estimated_nodes"`
	EstimatedTimeMs     int64  `json:"estimated_time_ms"`
	ResourceCredits     int    `json:"resource_credits"`
	AttestationRequired string `json:"attestation_required,omitempty"`
	CanExecute          bool   `json:"can_execute"`
	BlockedReason       string `json:"blocked_reason,omitempty"`
}

// RateLimitStatus reports the caller's remaining budget in the current window.
type RateLimitStatus struct {
	Tier                 string    `json:"tier"`
	ExplorationRemaining int       `json:"exploration_remaining"`
	ExplorationLimit     int       `json:"exploration_limit"`
	PathfindingRemaining int       `json:"pathfinding_remaining"`
	PathfindingLimit     int       `json:"pathfinding_limit"`
	ResetsAt             time.Time `json:"resets_at"`
	ResetsInMs           int64     `json:"resets_in_ms"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ExploreOptions tunes a neighborhood exploration request.
type ExploreOptions struct {
	// Depth is the traversal depth, 0 through 3. Zero value means depth 1
	// unless DepthSet is true.
	Depth    int
	DepthSet bool
	// MaxNodes caps the result size; 0 leaves the cap to the server.
	MaxNodes int
	// Types restricts traversal to these relationship types.
	Types []string
}

// PathOptions tunes a pathfinding request.
type PathOptions struct {
	// Algorithm is "shortest" (default) or "semantic".
	Algorithm string
	// MaxHops caps the path length; 0 uses the server default.
	MaxHops int
	// Prefer lists relationship types the semantic algorithm should favor.
	Prefer []string
}
