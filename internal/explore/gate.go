package explore

import (
	"context"
	"fmt"

	"github.com/opencurricula/explorer/internal/models"
)

// Gate resolves a caller's tier and depth ceiling from held attestations and
// enforces the fixed depth-to-attestation mapping: depths 0 and 1 need only
// an authenticated caller, depth 2 needs "graph-researcher", depth 3 needs
// "advanced-researcher", and pathfinding needs "path-creator".
type Gate struct {
	checker AttestationChecker
}

// NewGate creates a Gate over the given attestation registry.
func NewGate(checker AttestationChecker) *Gate {
	return &Gate{checker: checker}
}

// Resolve derives the caller's tier and maximum permitted exploration depth.
// An empty caller ID, or one the registry does not recognize as
// authenticated, resolves to the unauthenticated tier with maxDepth 0.
func (g *Gate) Resolve(ctx context.Context, callerID string) (models.Tier, int, error) {
	if callerID == "" {
		return models.TierUnauthenticated, 0, nil
	}

	authed, err := g.checker.Holds(ctx, callerID, models.AttestationAuthenticated)
	if err != nil {
		return "", 0, fmt.Errorf("checking authenticated attestation: %w", err)
	}

	if !authed {
		return models.TierUnauthenticated, 0, nil
	}

	tier := models.TierAuthenticated
	maxDepth := 1

	graphRes, err := g.checker.Holds(ctx, callerID, models.AttestationGraphResearcher)
	if err != nil {
		return "", 0, fmt.Errorf("checking graph-researcher attestation: %w", err)
	}

	if graphRes {
		tier = models.TierGraphResearcher
		maxDepth = 2
	}

	advRes, err := g.checker.Holds(ctx, callerID, models.AttestationAdvancedResearcher)
	if err != nil {
		return "", 0, fmt.Errorf("checking advanced-researcher attestation: %w", err)
	}

	if advRes {
		tier = models.TierAdvancedResearcher
		maxDepth = 3
	}

	pathCreator, err := g.checker.Holds(ctx, callerID, models.AttestationPathCreator)
	if err != nil {
		return "", 0, fmt.Errorf("checking path-creator attestation: %w", err)
	}

	if pathCreator {
		tier = models.TierPathCreator
		maxDepth = models.TierPathCreator.Limits().MaxDepth
	}

	return tier, maxDepth, nil
}

// CanFindPaths reports whether the caller holds the pathfinding attestation.
func (g *Gate) CanFindPaths(ctx context.Context, callerID string) (bool, error) {
	if callerID == "" {
		return false, nil
	}

	held, err := g.checker.Holds(ctx, callerID, models.AttestationPathCreator)
	if err != nil {
		return false, fmt.Errorf("checking path-creator attestation: %w", err)
	}

	return held, nil
}

// RequiredAttestationForDepth returns the credential that unlocks the given
// exploration depth.
func RequiredAttestationForDepth(depth int) models.Attestation {
	switch {
	case depth >= 3:
		return models.AttestationAdvancedResearcher
	case depth == 2:
		return models.AttestationGraphResearcher
	default:
		return models.AttestationAuthenticated
	}
}
