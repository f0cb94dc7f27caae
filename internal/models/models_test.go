package models_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/opencurricula/explorer/internal/models"
)

func TestExplorationQueryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   models.ExplorationQuery
		wantErr bool
	}{
		{"valid depth 1", models.ExplorationQuery{FocusID: "a", Depth: 1}, false},
		{"valid depth 0", models.ExplorationQuery{FocusID: "a", Depth: 0}, false},
		{"valid depth 3", models.ExplorationQuery{FocusID: "a", Depth: 3}, false},
		{"missing focus", models.ExplorationQuery{Depth: 1}, true},
		{"depth too deep", models.ExplorationQuery{FocusID: "a", Depth: 4}, true},
		{"negative depth", models.ExplorationQuery{FocusID: "a", Depth: -1}, true},
		{"negative max nodes", models.ExplorationQuery{FocusID: "a", Depth: 1, MaxNodes: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.query.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && models.ErrCodeOf(err) != models.ErrCodeInvalidQuery {
				t.Errorf("error code = %q, want INVALID_QUERY", models.ErrCodeOf(err))
			}
		})
	}
}

func TestPathfindingQueryValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()

		q := models.PathfindingQuery{FromID: "a", ToID: "b"}
		if err := q.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if q.Algorithm != models.AlgorithmShortest {
			t.Errorf("algorithm = %q, want shortest default", q.Algorithm)
		}

		if q.MaxHops != models.DefaultPathHops {
			t.Errorf("max hops = %d, want default %d", q.MaxHops, models.DefaultPathHops)
		}
	})

	tests := []struct {
		name  string
		query models.PathfindingQuery
	}{
		{"missing from", models.PathfindingQuery{ToID: "b"}},
		{"missing to", models.PathfindingQuery{FromID: "a"}},
		{"bad algorithm", models.PathfindingQuery{FromID: "a", ToID: "b", Algorithm: "astar"}},
		{"hops over limit", models.PathfindingQuery{FromID: "a", ToID: "b", MaxHops: 11}},
		{"negative hops", models.PathfindingQuery{FromID: "a", ToID: "b", MaxHops: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.query.Validate(); models.ErrCodeOf(err) != models.ErrCodeInvalidQuery {
				t.Fatalf("expected INVALID_QUERY, got %v", err)
			}
		})
	}
}

func TestParseRelationshipType(t *testing.T) {
	t.Parallel()

	for _, rt := range models.RelationshipTypes {
		got, err := models.ParseRelationshipType(string(rt))
		if err != nil || got != rt {
			t.Errorf("ParseRelationshipType(%q) = %q, %v", rt, got, err)
		}
	}

	if _, err := models.ParseRelationshipType("FRIENDS_WITH"); err == nil {
		t.Error("unknown relationship type should be rejected")
	}

	if _, err := models.ParseRelationshipType("contains"); err == nil {
		t.Error("relationship types are case-sensitive")
	}
}

func TestTierLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier        models.Tier
		maxDepth    int
		queries     int
		pathfinding int
	}{
		{models.TierUnauthenticated, 0, 0, 0},
		{models.TierAuthenticated, 1, 60, 0},
		{models.TierGraphResearcher, 2, 120, 0},
		{models.TierAdvancedResearcher, 3, 240, 0},
		{models.TierPathCreator, 3, 240, 30},
	}

	for _, tt := range tests {
		l := tt.tier.Limits()
		if l.MaxDepth != tt.maxDepth || l.QueriesPerHour != tt.queries || l.PathfindingPerHour != tt.pathfinding {
			t.Errorf("%s limits = %+v, want depth %d, %d/h, %d/h",
				tt.tier, l, tt.maxDepth, tt.queries, tt.pathfinding)
		}
	}

	// Unknown tiers fall back to the zero-budget profile.
	if l := models.Tier("superuser").Limits(); l.QueriesPerHour != 0 {
		t.Errorf("unknown tier limits = %+v, want unauthenticated profile", l)
	}
}

func TestExplorationErrorIs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapping: %w", &models.ExplorationError{
		Code:    models.ErrCodeRateLimitExceeded,
		Message: "budget exhausted",
	})

	if !errors.Is(err, &models.ExplorationError{Code: models.ErrCodeRateLimitExceeded}) {
		t.Error("errors.Is should match on code through wrapping")
	}

	if errors.Is(err, &models.ExplorationError{Code: models.ErrCodeNoPathExists}) {
		t.Error("errors.Is should not match a different code")
	}

	if models.ErrCodeOf(err) != models.ErrCodeRateLimitExceeded {
		t.Errorf("ErrCodeOf = %q, want RATE_LIMIT_EXCEEDED", models.ErrCodeOf(err))
	}

	if models.ErrCodeOf(errors.New("plain")) != "" {
		t.Error("ErrCodeOf should be empty for non-domain errors")
	}
}

func TestExplorationErrorMessage(t *testing.T) {
	t.Parallel()

	e := &models.ExplorationError{Code: models.ErrCodeDepthUnauthorized, Message: "too deep"}
	if got := e.Error(); got != "DEPTH_UNAUTHORIZED: too deep" {
		t.Errorf("Error() = %q", got)
	}

	bare := &models.ExplorationError{Code: models.ErrCodeNoPathExists}
	if got := bare.Error(); got != "NO_PATH_EXISTS" {
		t.Errorf("Error() = %q", got)
	}
}
