package client

import (
	"encoding/json"
	"fmt"
)

// Domain error codes returned by the exploration API.
const (
	CodeResourceNotFound        = "RESOURCE_NOT_FOUND"
	CodeDepthUnauthorized       = "DEPTH_UNAUTHORIZED"
	CodeRateLimitExceeded       = "RATE_LIMIT_EXCEEDED"
	CodePathfindingUnauthorized = "PATHFINDING_UNAUTHORIZED"
	CodeNoPathExists            = "NO_PATH_EXISTS"
	CodeQueryTooExpensive       = "QUERY_TOO_EXPENSIVE"
	CodeInvalidQuery            = "INVALID_QUERY"
)

// APIError represents a structured error response from the exploration API.
// Domain errors carry the gate context the server attached; plain transport
// errors carry only code and message.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`

	RequestedDepth      int    `json:"requested_depth,omitempty"`
	AllowedDepth        int    `json:"allowed_depth,omitempty"`
	RequiredAttestation string `json:"required_attestation,omitempty"`

	RateLimitStatus *RateLimitStatus     `json:"rate_limit_status,omitempty"`
	Cost            *QueryCost           `json:"cost,omitempty"`
	Metadata        *ExplorationMetadata `json:"metadata,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("explorer: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("explorer: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound returns true if the error is a 404 (missing node or no path).
func IsNotFound(err error) bool {
	if e, ok := err.(*APIError); ok {
		return e.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool {
	if e, ok := err.(*APIError); ok {
		return e.StatusCode == 429
	}
	return false
}

// IsUnauthorized returns true if the error is a 403 attestation failure.
func IsUnauthorized(err error) bool {
	if e, ok := err.(*APIError); ok {
		return e.StatusCode == 403
	}
	return false
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
