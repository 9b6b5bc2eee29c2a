package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evidence-navigator-server/internal/domain"
)

// windowEntry tracks one client IP inside the current fixed window
type windowEntry struct {
	windowStart time.Time
	count       int
}

// RateLimiter implements a fixed-window per-IP limit. It is the only
// process-wide mutable table; a single mutex suffices because contention
// is bounded by request rate. Stale entries are swept lazily on the first
// request after a full window has elapsed.
type RateLimiter struct {
	mu          sync.Mutex
	table       map[string]*windowEntry
	window      time.Duration
	maxRequests int
	lastSweep   time.Time
	now         func() time.Time
}

// NewRateLimiter creates a limiter with the given window and request cap
func NewRateLimiter(window time.Duration, maxRequests int) *RateLimiter {
	return &RateLimiter{
		table:       make(map[string]*windowEntry),
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

// Allow records one request for ip and reports whether it is within the
// window limit. A new window starts once the previous one has fully
// elapsed, with count 1.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweepLocked(now)

	entry, ok := rl.table[ip]
	if !ok || now.Sub(entry.windowStart) >= rl.window {
		rl.table[ip] = &windowEntry{windowStart: now, count: 1}
		return true
	}
	entry.count++
	return entry.count <= rl.maxRequests
}

// sweepLocked evicts entries whose window has fully elapsed. Triggered at
// most once per window.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for ip, entry := range rl.table {
		if now.Sub(entry.windowStart) >= rl.window {
			delete(rl.table, ip)
		}
	}
}

// Middleware returns the gin handler enforcing the limit with a 429 and
// Retry-After on excess
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := int(rl.window / time.Second)
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, domain.NewAPIError(
				domain.ErrRateLimit,
				"rate limit exceeded, retry later",
				c.GetString("correlation_id"),
			))
			return
		}
		c.Next()
	}
}
