package explore

import (
	"context"
	"sync"
	"time"

	"github.com/opencurricula/explorer/internal/models"
)

// maxLimitEntries caps the number of tracked callers to prevent memory
// exhaustion from caller-ID churn.
const maxLimitEntries = 100_000

// RateLimiter maintains per-caller fixed hourly windows. Each caller has an
// exploration counter and a pathfinding counter, lazily created with the
// caller's current tier limits and reset when the wall clock crosses the
// window boundary.
//
// The map mutex only guards entry lookup; each entry carries its own lock so
// contention stays per-caller.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limitEntry
	clock   Clock
}

type limitEntry struct {
	mu                   sync.Mutex
	tier                 models.Tier
	windowStart          time.Time
	lastSeen             time.Time
	explorationRemaining int
	pathfindingRemaining int
}

// NewRateLimiter creates a RateLimiter and starts a background sweep that
// evicts stale entries until ctx is cancelled.
func NewRateLimiter(ctx context.Context, clock Clock) *RateLimiter {
	rl := &RateLimiter{
		entries: make(map[string]*limitEntry),
		clock:   clock,
	}
	go rl.startSweep(ctx)

	return rl
}

// startSweep periodically evicts entries idle for more than two windows.
func (rl *RateLimiter) startSweep(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := rl.clock.Now()
			rl.mu.Lock()
			for id, e := range rl.entries {
				e.mu.Lock()
				idle := now.Sub(e.lastSeen) > 2*e.tier.Limits().ResetInterval
				e.mu.Unlock()
				if idle {
					delete(rl.entries, id)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// entry returns the caller's record, creating it with a full budget if
// needed. Returns nil if the entry table is full and the caller is unseen.
func (rl *RateLimiter) entry(callerID string, tier models.Tier, now time.Time) *limitEntry {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[callerID]
	if !ok {
		if len(rl.entries) >= maxLimitEntries {
			return nil
		}

		limits := tier.Limits()
		e = &limitEntry{
			tier:                 tier,
			windowStart:          now,
			explorationRemaining: limits.QueriesPerHour,
			pathfindingRemaining: limits.PathfindingPerHour,
		}
		rl.entries[callerID] = e
	}

	return e
}

// rollover resets counters when the window has elapsed, applying whatever
// tier the caller resolved to on this call. A tier change mid-window is
// recorded but neither refunds nor penalizes the in-flight window.
func (e *limitEntry) rollover(tier models.Tier, now time.Time) {
	e.lastSeen = now
	e.tier = tier

	limits := e.tier.Limits()
	if now.Before(e.windowStart.Add(limits.ResetInterval)) {
		return
	}

	e.windowStart = now
	e.explorationRemaining = limits.QueriesPerHour
	e.pathfindingRemaining = limits.PathfindingPerHour
}

// status builds a RateLimitStatus snapshot. Caller must hold e.mu.
func (e *limitEntry) status(now time.Time) models.RateLimitStatus {
	limits := e.tier.Limits()
	resetsAt := e.windowStart.Add(limits.ResetInterval)

	return models.RateLimitStatus{
		Tier:                 e.tier,
		ExplorationRemaining: e.explorationRemaining,
		ExplorationLimit:     limits.QueriesPerHour,
		PathfindingRemaining: e.pathfindingRemaining,
		PathfindingLimit:     limits.PathfindingPerHour,
		ResetsAt:             resetsAt,
		ResetsInMs:           resetsAt.Sub(now).Milliseconds(),
	}
}

// Admit decrements the counter for the given query kind, or returns the
// current status and false if the budget is exhausted. Admit must only be
// called after all other gating checks have passed: a rejected call never
// consumes budget.
func (rl *RateLimiter) Admit(callerID string, tier models.Tier, kind QueryKind) (models.RateLimitStatus, bool) {
	now := rl.clock.Now()

	e := rl.entry(callerID, tier, now)
	if e == nil {
		// Entry table full: treat as exhausted rather than growing unbounded.
		return freshStatus(tier, now), false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rollover(tier, now)

	var remaining *int

	switch kind {
	case KindPathfinding:
		remaining = &e.pathfindingRemaining
	default:
		remaining = &e.explorationRemaining
	}

	if *remaining <= 0 {
		return e.status(now), false
	}

	*remaining--

	return e.status(now), true
}

// Allows reports whether a call of the given kind would currently be
// admitted, without consuming budget. Used by the cost estimator.
func (rl *RateLimiter) Allows(callerID string, tier models.Tier, kind QueryKind) bool {
	st := rl.Status(callerID, tier)

	if kind == KindPathfinding {
		return st.PathfindingRemaining > 0
	}

	return st.ExplorationRemaining > 0
}

// Status reports the caller's current budget without consuming any. Unseen
// callers are reported with a full budget and are not materialized.
func (rl *RateLimiter) Status(callerID string, tier models.Tier) models.RateLimitStatus {
	now := rl.clock.Now()

	rl.mu.Lock()
	e, ok := rl.entries[callerID]
	rl.mu.Unlock()

	if !ok {
		return freshStatus(tier, now)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rollover(tier, now)

	return e.status(now)
}

// freshStatus is the status of a caller with no record: a full window
// starting now.
func freshStatus(tier models.Tier, now time.Time) models.RateLimitStatus {
	limits := tier.Limits()

	return models.RateLimitStatus{
		Tier:                 tier,
		ExplorationRemaining: limits.QueriesPerHour,
		ExplorationLimit:     limits.QueriesPerHour,
		PathfindingRemaining: limits.PathfindingPerHour,
		PathfindingLimit:     limits.PathfindingPerHour,
		ResetsAt:             now.Add(limits.ResetInterval),
		ResetsInMs:           limits.ResetInterval.Milliseconds(),
	}
}
