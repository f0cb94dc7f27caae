package models

import (
	"errors"
	"fmt"
)

// ExplorationErrorCode identifies a domain failure class.
type ExplorationErrorCode string

// The exploration error taxonomy. Gating failures are surfaced verbatim with
// full context, never downgraded or retried by the engine.
const (
	ErrCodeResourceNotFound        ExplorationErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeDepthUnauthorized       ExplorationErrorCode = "DEPTH_UNAUTHORIZED"
	ErrCodeRateLimitExceeded       ExplorationErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodePathfindingUnauthorized ExplorationErrorCode = "PATHFINDING_UNAUTHORIZED"
	ErrCodeNoPathExists            ExplorationErrorCode = "NO_PATH_EXISTS"
	ErrCodeQueryTooExpensive       ExplorationErrorCode = "QUERY_TOO_EXPENSIVE"
	ErrCodeInvalidQuery            ExplorationErrorCode = "INVALID_QUERY"
)

// ExplorationError carries a domain error code plus whatever context the
// failing gate can attach.
type ExplorationError struct {
	Code    ExplorationErrorCode `json:"code"`
	Message string               `json:"message"`

	// Attestation gate context.
	RequestedDepth      int         `json:"requested_depth,omitempty"`
	AllowedDepth        int         `json:"allowed_depth,omitempty"`
	RequiredAttestation Attestation `json:"required_attestation,omitempty"`

	// Rate limiter context.
	Status *RateLimitStatus `json:"rate_limit_status,omitempty"`

	// Cost estimator context.
	Cost *QueryCost `json:"cost,omitempty"`

	// Work performed before the failure (NO_PATH_EXISTS and cancellations).
	Metadata *ExplorationMetadata `json:"metadata,omitempty"`
}

// Error implements the error interface.
func (e *ExplorationError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an ExplorationError with the same code, so
// callers can match with errors.Is against a bare-code sentinel.
func (e *ExplorationError) Is(target error) bool {
	var te *ExplorationError
	if !errors.As(target, &te) {
		return false
	}

	return e.Code == te.Code
}

// ErrCodeOf extracts the exploration error code from err, or "" if err is
// not an ExplorationError.
func ErrCodeOf(err error) ExplorationErrorCode {
	var ee *ExplorationError
	if errors.As(err, &ee) {
		return ee.Code
	}

	return ""
}

// ErrNodeNotFound is the sentinel the graph store returns for missing nodes.
// The engine translates it into a RESOURCE_NOT_FOUND ExplorationError.
var ErrNodeNotFound = errors.New("node not found")
