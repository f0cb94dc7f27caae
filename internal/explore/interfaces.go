// Package explore implements the content-graph exploration engine:
// bounded-depth neighborhood discovery and pathfinding, gated by attestation
// level, budgeted by per-tier hourly rate limits, with up-front cost
// estimation.
package explore

import (
	"context"
	"time"

	"github.com/opencurricula/explorer/internal/models"
)

// GraphAccessor is the read-only capability the engine needs from the
// content graph store. Lookups are expected to be individually fast (O(1));
// errors propagate to the caller without retry.
//
// OutgoingEdges and IncomingEdges must return edges in a stable order for a
// given node, or traversal results lose their determinism guarantee.
//
// The engine takes no snapshot: if the underlying graph is mutated
// concurrently by writers outside the engine, a traversal may observe a
// point-in-time inconsistent view. This is accepted.
type GraphAccessor interface {
	GetNode(ctx context.Context, id string) (*models.Node, error)
	OutgoingEdges(ctx context.Context, id string) ([]models.Edge, error)
	IncomingEdges(ctx context.Context, id string) ([]models.Edge, error)
}

// AttestationChecker answers whether a caller holds a named credential.
type AttestationChecker interface {
	Holds(ctx context.Context, callerID string, att models.Attestation) (bool, error)
}

// Clock supplies wall-clock time. Injected so rate-limit windows are
// testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// QueryKind distinguishes the two budgeted operation classes.
type QueryKind string

// Budgeted operation classes.
const (
	KindExploration QueryKind = "exploration"
	KindPathfinding QueryKind = "pathfinding"
)
