package models

import "time"

// Attestation is a named credential a caller may hold. The engine gates on
// this closed set; the AttestationChecker adapter translates to whatever the
// external registry uses.
type Attestation string

// Attestations recognized by the engine.
const (
	AttestationAuthenticated      Attestation = "authenticated"
	AttestationGraphResearcher    Attestation = "graph-researcher"
	AttestationAdvancedResearcher Attestation = "advanced-researcher"
	AttestationPathCreator        Attestation = "path-creator"
)

// Tier names a rate-limit profile. Tiers are derived from held attestations
// on every call, never stored.
type Tier string

// Rate-limit tiers, lowest to highest.
const (
	TierUnauthenticated    Tier = "unauthenticated"
	TierAuthenticated      Tier = "authenticated"
	TierGraphResearcher    Tier = "graph-researcher"
	TierAdvancedResearcher Tier = "advanced-researcher"
	TierPathCreator        Tier = "path-creator"
)

// TierLimits holds the budget profile for one tier. ResetInterval is the
// fixed rate-limit window length.
type TierLimits struct {
	MaxDepth           int           `json:"max_depth"`
	QueriesPerHour     int           `json:"queries_per_hour"`
	PathfindingPerHour int           `json:"pathfinding_per_hour"`
	ResetInterval      time.Duration `json:"-"`
}

// tierTable is the fixed budget policy. The unauthenticated tier has a zero
// query budget: even depth-0 focus lookups are blocked for anonymous callers.
var tierTable = map[Tier]TierLimits{
	TierUnauthenticated:    {MaxDepth: 0, QueriesPerHour: 0, PathfindingPerHour: 0, ResetInterval: time.Hour},
	TierAuthenticated:      {MaxDepth: 1, QueriesPerHour: 60, PathfindingPerHour: 0, ResetInterval: time.Hour},
	TierGraphResearcher:    {MaxDepth: 2, QueriesPerHour: 120, PathfindingPerHour: 0, ResetInterval: time.Hour},
	TierAdvancedResearcher: {MaxDepth: 3, QueriesPerHour: 240, PathfindingPerHour: 0, ResetInterval: time.Hour},
	TierPathCreator:        {MaxDepth: 3, QueriesPerHour: 240, PathfindingPerHour: 30, ResetInterval: time.Hour},
}

// Limits returns the budget profile for a tier.
func (t Tier) Limits() TierLimits {
	if l, ok := tierTable[t]; ok {
		return l
	}

	return tierTable[TierUnauthenticated]
}

// RateLimitStatus reports a caller's remaining budget within the current
// window. Returned verbatim on RATE_LIMIT_EXCEEDED so callers can compute
// backoff.
type RateLimitStatus struct {
	Tier                 Tier      `json:"tier"`
	ExplorationRemaining int       `json:"exploration_remaining"`
	ExplorationLimit     int       `json:"exploration_limit"`
	PathfindingRemaining int       `json:"pathfinding_remaining"`
	PathfindingLimit     int       `json:"pathfinding_limit"`
	ResetsAt             time.Time `json:"resets_at"`
	ResetsInMs           int64     `json:"resets_in_ms"`
}
