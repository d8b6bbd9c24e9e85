package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptkit/auth"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests allowed per minute per key.
	RequestsPerMinute int
	// KeyFunc extracts the rate limit key from a request. Defaults to SubjectKey.
	KeyFunc func(*gin.Context) string
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// RateLimit applies a per-key sliding one-minute window. Stale keys are
// pruned on the request path, so the limiter owns no goroutine.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = SubjectKey
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rl := &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    cfg.RequestsPerMinute,
	}

	return func(c *gin.Context) {
		if !rl.allow(cfg.KeyFunc(c), cfg.Now()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// SubjectKey keys on the authenticated subject, falling back to client IP.
func SubjectKey(c *gin.Context) string {
	if claims, ok := auth.ClaimsFromContext(c.Request.Context()); ok && claims.Subject != "" {
		return "sub:" + claims.Subject
	}
	return "ip:" + c.ClientIP()
}

const pruneInterval = 5 * time.Minute

type rateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	lastPrune time.Time
}

func (rl *rateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-time.Minute)
	if now.Sub(rl.lastPrune) > pruneInterval {
		rl.prune(cutoff)
		rl.lastPrune = now
	}

	valid := filterByTime(rl.requests[key], cutoff)
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}
	rl.requests[key] = append(valid, now)
	return true
}

func (rl *rateLimiter) prune(cutoff time.Time) {
	for key, times := range rl.requests {
		valid := filterByTime(times, cutoff)
		if len(valid) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = valid
		}
	}
}

func filterByTime(times []time.Time, cutoff time.Time) []time.Time {
	var result []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}
