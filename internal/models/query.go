package models

// Depth and hop bounds for exploration and pathfinding queries.
const (
	MaxExplorationDepth = 3
	MaxPathHops         = 10
	DefaultPathHops     = 6
)

// PathAlgorithm selects a pathfinding strategy.
type PathAlgorithm string

// Supported pathfinding algorithms.
const (
	AlgorithmShortest PathAlgorithm = "shortest"
	AlgorithmSemantic PathAlgorithm = "semantic"
)

// ExplorationQuery describes a bounded-depth neighborhood expansion from a
// focus node. Immutable once submitted.
type ExplorationQuery struct {
	FocusID            string             `json:"focus_id"`
	Depth              int                `json:"depth"`
	RelationshipFilter []RelationshipType `json:"relationship_filter,omitempty"`
	MaxNodes           int                `json:"max_nodes,omitempty"` // 0 means unset
}

// Validate checks query shape. Attestation and budget checks happen later;
// this only rejects structurally invalid queries.
func (q *ExplorationQuery) Validate() error {
	if q.FocusID == "" {
		return &ExplorationError{Code: ErrCodeInvalidQuery, Message: "focus id is required"}
	}

	if q.Depth < 0 || q.Depth > MaxExplorationDepth {
		return &ExplorationError{
			Code:    ErrCodeInvalidQuery,
			Message: "depth must be between 0 and 3",
		}
	}

	if q.MaxNodes < 0 {
		return &ExplorationError{Code: ErrCodeInvalidQuery, Message: "max_nodes must not be negative"}
	}

	return nil
}

// PathfindingQuery describes a path search between two nodes.
type PathfindingQuery struct {
	FromID                 string             `json:"from_id"`
	ToID                   string             `json:"to_id"`
	Algorithm              PathAlgorithm      `json:"algorithm"`
	MaxHops                int                `json:"max_hops,omitempty"` // 0 means use DefaultPathHops
	PreferredRelationships []RelationshipType `json:"preferred_relationships,omitempty"`
}

// Validate checks query shape and applies the default hop bound.
func (q *PathfindingQuery) Validate() error {
	if q.FromID == "" || q.ToID == "" {
		return &ExplorationError{Code: ErrCodeInvalidQuery, Message: "from and to ids are required"}
	}

	switch q.Algorithm {
	case AlgorithmShortest, AlgorithmSemantic:
	case "":
		q.Algorithm = AlgorithmShortest
	default:
		return &ExplorationError{
			Code:    ErrCodeInvalidQuery,
			Message: "algorithm must be \"shortest\" or \"semantic\"",
		}
	}

	if q.MaxHops < 0 || q.MaxHops > MaxPathHops {
		return &ExplorationError{Code: ErrCodeInvalidQuery, Message: "max_hops must be between 1 and 10"}
	}

	if q.MaxHops == 0 {
		q.MaxHops = DefaultPathHops
	}

	return nil
}
