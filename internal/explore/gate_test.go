package explore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/opencurricula/explorer/internal/explore"
	"github.com/opencurricula/explorer/internal/models"
)

func TestGateResolve_Tiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		callerID string
		grants   []models.Attestation
		tier     models.Tier
		maxDepth int
	}{
		{
			name:     "empty caller id",
			callerID: "",
			tier:     models.TierUnauthenticated,
			maxDepth: 0,
		},
		{
			name:     "unknown caller",
			callerID: "nobody",
			tier:     models.TierUnauthenticated,
			maxDepth: 0,
		},
		{
			name:     "authenticated only",
			callerID: "c1",
			grants:   grantsFor(models.TierAuthenticated),
			tier:     models.TierAuthenticated,
			maxDepth: 1,
		},
		{
			name:     "graph researcher",
			callerID: "c1",
			grants:   grantsFor(models.TierGraphResearcher),
			tier:     models.TierGraphResearcher,
			maxDepth: 2,
		},
		{
			name:     "advanced researcher",
			callerID: "c1",
			grants:   grantsFor(models.TierAdvancedResearcher),
			tier:     models.TierAdvancedResearcher,
			maxDepth: 3,
		},
		{
			name:     "path creator",
			callerID: "c1",
			grants:   grantsFor(models.TierPathCreator),
			tier:     models.TierPathCreator,
			maxDepth: 3,
		},
		{
			name:     "path creator without researcher grants",
			callerID: "c1",
			grants:   []models.Attestation{models.AttestationAuthenticated, models.AttestationPathCreator},
			tier:     models.TierPathCreator,
			maxDepth: 3,
		},
		{
			name:     "path creator grant without authentication is ignored",
			callerID: "c1",
			grants:   []models.Attestation{models.AttestationPathCreator},
			tier:     models.TierUnauthenticated,
			maxDepth: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gate := explore.NewGate(&mockChecker{grants: map[string][]models.Attestation{"c1": tt.grants}})

			tier, maxDepth, err := gate.Resolve(context.Background(), tt.callerID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tier != tt.tier {
				t.Errorf("tier = %q, want %q", tier, tt.tier)
			}

			if maxDepth != tt.maxDepth {
				t.Errorf("maxDepth = %d, want %d", maxDepth, tt.maxDepth)
			}
		})
	}
}

func TestGateResolve_CheckerError(t *testing.T) {
	t.Parallel()

	checkErr := errors.New("registry down")
	gate := explore.NewGate(&mockChecker{err: checkErr})

	if _, _, err := gate.Resolve(context.Background(), "c1"); !errors.Is(err, checkErr) {
		t.Fatalf("expected wrapped registry error, got %v", err)
	}
}

func TestGateCanFindPaths(t *testing.T) {
	t.Parallel()

	gate := explore.NewGate(&mockChecker{grants: map[string][]models.Attestation{
		"creator":  grantsFor(models.TierPathCreator),
		"explorer": grantsFor(models.TierAdvancedResearcher),
	}})

	tests := []struct {
		callerID string
		want     bool
	}{
		{"creator", true},
		{"explorer", false},
		{"", false},
	}

	for _, tt := range tests {
		got, err := gate.CanFindPaths(context.Background(), tt.callerID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got != tt.want {
			t.Errorf("CanFindPaths(%q) = %v, want %v", tt.callerID, got, tt.want)
		}
	}
}

func TestRequiredAttestationForDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth int
		want  models.Attestation
	}{
		{0, models.AttestationAuthenticated},
		{1, models.AttestationAuthenticated},
		{2, models.AttestationGraphResearcher},
		{3, models.AttestationAdvancedResearcher},
	}

	for _, tt := range tests {
		if got := explore.RequiredAttestationForDepth(tt.depth); got != tt.want {
			t.Errorf("RequiredAttestationForDepth(%d) = %q, want %q", tt.depth, got, tt.want)
		}
	}
}
