package store

import (
	"context"
	"fmt"

	"github.com/opencurricula/explorer/internal/models"
)

// AttestationStore is the Postgres-backed AttestationChecker. The engine
// gates on a closed attestation enum; this adapter is where those names meet
// whatever the registry stores.
type AttestationStore struct {
	Base
}

// NewAttestationStore creates an AttestationStore.
func NewAttestationStore(base Base) *AttestationStore {
	return &AttestationStore{Base: base}
}

// Holds reports whether the caller holds the named attestation. Every known
// caller implicitly holds "authenticated".
func (s *AttestationStore) Holds(ctx context.Context, callerID string, att models.Attestation) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if att == models.AttestationAuthenticated {
		var exists bool
		if err := s.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM callers WHERE id = $1)", callerID).Scan(&exists); err != nil {
			return false, fmt.Errorf("checking caller %s: %w", callerID, err)
		}

		return exists, nil
	}

	var exists bool
	if err := s.Pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM caller_attestations WHERE caller_id = $1 AND attestation = $2)",
		callerID, string(att)).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking attestation %s for caller %s: %w", att, callerID, err)
	}

	return exists, nil
}
