package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxBuckets is the maximum number of tracked IPs to prevent memory exhaustion.
const maxBuckets = 100_000

// FloodLimiter is a per-IP token bucket guarding the transport against
// request floods. It is unrelated to the engine's per-caller hourly budgets:
// this protects the process, the engine protects the graph.
type FloodLimiter struct {
	buckets map[string]*bucket
	mu      sync.Mutex
	rate    int
	burst   int
}

// bucket is a per-IP token bucket.
type bucket struct {
	tokens     int
	lastFill   time.Time
	ratePerSec int
	burst      int
}

func (b *bucket) allow() bool {
	now := time.Now()
	elapsed := now.Sub(b.lastFill).Seconds()
	refill := int(elapsed * float64(b.ratePerSec))

	if refill > 0 {
		b.tokens += refill
		if b.tokens > b.burst {
			b.tokens = b.burst
		}

		b.lastFill = now
	}

	if b.tokens > 0 {
		b.tokens--

		return true
	}

	return false
}

// NewFloodLimiter creates a FloodLimiter with the given requests per second
// and burst size. A background goroutine evicts stale buckets until ctx is
// cancelled.
func NewFloodLimiter(ctx context.Context, ratePerSec, burst int) *FloodLimiter {
	fl := &FloodLimiter{
		buckets: make(map[string]*bucket),
		rate:    ratePerSec,
		burst:   burst,
	}
	go fl.startCleanup(ctx)

	return fl
}

// startCleanup periodically evicts stale rate-limit buckets.
func (fl *FloodLimiter) startCleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	const maxAge = 10 * time.Minute

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fl.mu.Lock()
			for ip, b := range fl.buckets {
				if now.Sub(b.lastFill) > maxAge {
					delete(fl.buckets, ip)
				}
			}
			fl.mu.Unlock()
		}
	}
}

// Handler returns Gin middleware that applies flood limiting per client IP.
func (fl *FloodLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() is safe from X-Forwarded-For spoofing because
		// SetTrustedProxies(nil) in router.go disables proxy header trust.
		ip := c.ClientIP()

		fl.mu.Lock()
		b, ok := fl.buckets[ip]
		if !ok {
			// Reject new IPs when the bucket table is full.
			if len(fl.buckets) >= maxBuckets {
				fl.mu.Unlock()
				respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			b = &bucket{
				tokens:     fl.burst,
				lastFill:   time.Now(),
				ratePerSec: fl.rate,
				burst:      fl.burst,
			}
			fl.buckets[ip] = b
		}

		allowed := b.allow()
		fl.mu.Unlock()

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
