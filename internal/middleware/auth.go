// Package middleware provides HTTP middleware for the exploration service.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CallerIDKey is the gin context key under which the resolved caller ID is
// stored. Empty means unauthenticated.
const CallerIDKey = "caller_id"

// CallerLookup resolves an API key to a caller ID.
type CallerLookup interface {
	GetCallerByAPIKey(ctx context.Context, apiKey string) (string, error)
}

// truncateKey returns at most the first 4 characters of key followed by "...".
func truncateKey(key string) string {
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return key
}

// CallerAuth returns Gin middleware that resolves the Bearer API key to a
// caller ID. Unlike a conventional auth gate it never rejects: a missing or
// unknown key leaves the caller ID empty and the engine's attestation gate
// applies the unauthenticated policy. This keeps tier policy in one place.
func CallerAuth(lookup CallerLookup, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := ExtractBearerToken(c)
		if apiKey == "" {
			c.Set(CallerIDKey, "")
			c.Next()

			return
		}

		callerID, err := lookup.GetCallerByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			log.WithFields(logrus.Fields{
				"client_ip":  c.ClientIP(),
				"path":       c.Request.URL.Path,
				"request_id": c.GetString("request_id"),
				"key_prefix": truncateKey(apiKey),
			}).Warn("unknown api key, treating caller as unauthenticated")

			c.Set(CallerIDKey, "")
			c.Next()

			return
		}

		c.Set(CallerIDKey, callerID)
		c.Next()
	}
}

// ExtractBearerToken extracts the API key from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// CallerID returns the caller ID resolved by CallerAuth, or "".
func CallerID(c *gin.Context) string {
	return c.GetString(CallerIDKey)
}
