// Package store provides read-only Postgres adapters behind the engine's
// collaborator interfaces: the content graph (GraphAccessor) and the
// attestation registry (AttestationChecker). The engine itself never issues
// SQL.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opencurricula/explorer/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// GetCallerByAPIKey looks up a caller ID by API key hash. Used by the auth
// middleware; an unknown key is not an error at the engine level, the caller
// simply resolves to the unauthenticated tier.
func (b *Base) GetCallerByAPIKey(ctx context.Context, apiKey string) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	hash := sha256.Sum256([]byte(apiKey))
	apiKeyHash := hex.EncodeToString(hash[:])

	var callerID string

	err := b.Pool.QueryRow(ctx, "SELECT id FROM callers WHERE api_key_hash = $1", apiKeyHash).Scan(&callerID)
	if err != nil {
		return "", fmt.Errorf("looking up caller by API key: %w", err)
	}

	return callerID, nil
}
