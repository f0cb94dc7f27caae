package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencurricula/explorer/internal/httputil"
	"github.com/opencurricula/explorer/internal/metrics"
	"github.com/opencurricula/explorer/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeInternalError  = "internal_error"
	ErrCodeForbidden      = "forbidden"
	ErrCodeRateLimited    = "rate_limited"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondDomainError maps an ExplorationError to an HTTP status and writes
// the full error context verbatim, per the propagation policy: gating
// failures are never downgraded.
func respondDomainError(c *gin.Context, ee *models.ExplorationError) {
	metrics.ErrorsTotal.WithLabelValues(string(ee.Code)).Inc()

	status := http.StatusInternalServerError

	switch ee.Code {
	case models.ErrCodeInvalidQuery:
		status = http.StatusBadRequest
	case models.ErrCodeResourceNotFound, models.ErrCodeNoPathExists:
		status = http.StatusNotFound
	case models.ErrCodeDepthUnauthorized, models.ErrCodePathfindingUnauthorized:
		status = http.StatusForbidden
	case models.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case models.ErrCodeQueryTooExpensive:
		status = http.StatusUnprocessableEntity
	}

	if rid, exists := c.Get("request_id"); exists {
		if s, ok := rid.(string); ok {
			c.Header("X-Request-ID", s)
		}
	}

	c.AbortWithStatusJSON(status, ee)
}

// handleError dispatches between domain errors and internal failures.
func handleError(c *gin.Context, err error, logInternal func(error)) {
	var ee *models.ExplorationError
	if errors.As(err, &ee) {
		respondDomainError(c, ee)

		return
	}

	logInternal(err)
	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
