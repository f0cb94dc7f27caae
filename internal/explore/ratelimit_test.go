package explore_test

import (
	"context"
	"testing"
	"time"

	"github.com/opencurricula/explorer/internal/explore"
	"github.com/opencurricula/explorer/internal/models"
)

func newTestLimiter(t *testing.T, clock explore.Clock) *explore.RateLimiter {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return explore.NewRateLimiter(ctx, clock)
}

func TestRateLimiterAdmit_Decrements(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	rl := newTestLimiter(t, clock)

	status, ok := rl.Admit("c1", models.TierAuthenticated, explore.KindExploration)
	if !ok {
		t.Fatal("first admission should succeed")
	}

	limit := models.TierAuthenticated.Limits().QueriesPerHour
	if status.ExplorationRemaining != limit-1 {
		t.Errorf("remaining = %d, want %d", status.ExplorationRemaining, limit-1)
	}

	if status.ExplorationLimit != limit {
		t.Errorf("limit = %d, want %d", status.ExplorationLimit, limit)
	}
}

func TestRateLimiterAdmit_Exhaustion(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	rl := newTestLimiter(t, clock)

	limit := models.TierAuthenticated.Limits().QueriesPerHour
	for i := 0; i < limit; i++ {
		if _, ok := rl.Admit("c1", models.TierAuthenticated, explore.KindExploration); !ok {
			t.Fatalf("admission %d should succeed", i)
		}
	}

	status, ok := rl.Admit("c1", models.TierAuthenticated, explore.KindExploration)
	if ok {
		t.Fatal("admission past the limit should fail")
	}

	if status.ExplorationRemaining != 0 {
		t.Errorf("remaining = %d, want 0", status.ExplorationRemaining)
	}
}

func TestRateLimiterAdmit_ZeroBudgetTier(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	rl := newTestLimiter(t, clock)

	if _, ok := rl.Admit("anon", models.TierUnauthenticated, explore.KindExploration); ok {
		t.Fatal("unauthenticated exploration should never be admitted")
	}

	// Pathfinding budget is zero for everyone below path-creator.
	if _, ok := rl.Admit("c1", models.TierAdvancedResearcher, explore.KindPathfinding); ok {
		t.Fatal("pathfinding should not be admitted without a pathfinding budget")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := newFakeClock(start)
	rl := newTestLimiter(t, clock)

	limit := models.TierAuthenticated.Limits().QueriesPerHour
	for i := 0; i < limit; i++ {
		rl.Admit("c1", models.TierAuthenticated, explore.KindExploration)
	}

	// One millisecond before the boundary: still exhausted.
	clock.advance(time.Hour - time.Millisecond)

	if _, ok := rl.Admit("c1", models.TierAuthenticated, explore.KindExploration); ok {
		t.Fatal("budget should still be exhausted just before the window boundary")
	}

	// Crossing the boundary restores the full budget.
	clock.advance(time.Millisecond)

	status, ok := rl.Admit("c1", models.TierAuthenticated, explore.KindExploration)
	if !ok {
		t.Fatal("admission should succeed after the window resets")
	}

	if status.ExplorationRemaining != limit-1 {
		t.Errorf("remaining after reset = %d, want %d", status.ExplorationRemaining, limit-1)
	}
}

func TestRateLimiterTierChange_AppliedAtReset(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := newFakeClock(start)
	rl := newTestLimiter(t, clock)

	rl.Admit("c1", models.TierAuthenticated, explore.KindExploration)

	// Upgrade mid-window: the in-flight counters are not refunded, but the
	// reported limits follow the new tier.
	status, ok := rl.Admit("c1", models.TierGraphResearcher, explore.KindExploration)
	if !ok {
		t.Fatal("admission should succeed")
	}

	authLimit := models.TierAuthenticated.Limits().QueriesPerHour
	if status.ExplorationRemaining != authLimit-2 {
		t.Errorf("remaining = %d, want %d (no refund on upgrade)", status.ExplorationRemaining, authLimit-2)
	}

	clock.advance(time.Hour)

	status = rl.Status("c1", models.TierGraphResearcher)
	wantLimit := models.TierGraphResearcher.Limits().QueriesPerHour

	if status.ExplorationRemaining != wantLimit {
		t.Errorf("remaining after reset = %d, want full upgraded budget %d", status.ExplorationRemaining, wantLimit)
	}
}

func TestRateLimiterCallersIndependent(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	rl := newTestLimiter(t, clock)

	limit := models.TierAuthenticated.Limits().QueriesPerHour
	for i := 0; i < limit; i++ {
		rl.Admit("c1", models.TierAuthenticated, explore.KindExploration)
	}

	status, ok := rl.Admit("c2", models.TierAuthenticated, explore.KindExploration)
	if !ok {
		t.Fatal("an exhausted caller must not affect another caller")
	}

	if status.ExplorationRemaining != limit-1 {
		t.Errorf("remaining = %d, want %d", status.ExplorationRemaining, limit-1)
	}
}

func TestRateLimiterStatus_DoesNotConsume(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	rl := newTestLimiter(t, clock)

	limit := models.TierPathCreator.Limits()

	for i := 0; i < 5; i++ {
		status := rl.Status("c1", models.TierPathCreator)
		if status.ExplorationRemaining != limit.QueriesPerHour {
			t.Fatalf("Status consumed budget: remaining = %d", status.ExplorationRemaining)
		}

		if status.PathfindingRemaining != limit.PathfindingPerHour {
			t.Fatalf("Status consumed pathfinding budget: remaining = %d", status.PathfindingRemaining)
		}
	}

	if !rl.Allows("c1", models.TierPathCreator, explore.KindPathfinding) {
		t.Error("Allows should be true for a fresh caller")
	}
}

func TestRateLimiterBudgetsSeparate(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	rl := newTestLimiter(t, clock)

	limits := models.TierPathCreator.Limits()
	for i := 0; i < limits.PathfindingPerHour; i++ {
		if _, ok := rl.Admit("c1", models.TierPathCreator, explore.KindPathfinding); !ok {
			t.Fatalf("pathfinding admission %d should succeed", i)
		}
	}

	if _, ok := rl.Admit("c1", models.TierPathCreator, explore.KindPathfinding); ok {
		t.Fatal("pathfinding budget should be exhausted")
	}

	// Exploration budget is untouched.
	status, ok := rl.Admit("c1", models.TierPathCreator, explore.KindExploration)
	if !ok {
		t.Fatal("exploration should still be admitted")
	}

	if status.ExplorationRemaining != limits.QueriesPerHour-1 {
		t.Errorf("exploration remaining = %d, want %d", status.ExplorationRemaining, limits.QueriesPerHour-1)
	}
}
