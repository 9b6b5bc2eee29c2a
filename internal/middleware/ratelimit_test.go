package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(window time.Duration, max int) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(window, max)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiterWindow(t *testing.T) {
	rl, now := newTestLimiter(60*time.Second, 60)

	// 60 requests within 30 seconds all pass
	for i := 0; i < 60; i++ {
		require.True(t, rl.Allow("1.2.3.4"), "request %d should pass", i+1)
		*now = now.Add(500 * time.Millisecond)
	}

	// Request 61 inside the window is rejected
	assert.False(t, rl.Allow("1.2.3.4"))

	// Another IP is unaffected
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiterNewWindowAfterElapse(t *testing.T) {
	rl, now := newTestLimiter(60*time.Second, 60)

	for i := 0; i < 61; i++ {
		rl.Allow("1.2.3.4")
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// A full window after the first request, counting restarts at 1
	*now = now.Add(60 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))

	rl.mu.Lock()
	entry := rl.table["1.2.3.4"]
	rl.mu.Unlock()
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.count)
}

func TestRateLimiterSweepEvictsStaleEntries(t *testing.T) {
	rl, now := newTestLimiter(60*time.Second, 60)

	rl.Allow("1.2.3.4")
	rl.Allow("5.6.7.8")

	*now = now.Add(2 * time.Minute)
	rl.Allow("9.9.9.9")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.table, 1, "stale entries evicted on the next request after the window elapsed")
	assert.Contains(t, rl.table, "9.9.9.9")
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := newTestLimiter(60*time.Second, 2)

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	resp := do()
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "60", resp.Header().Get("Retry-After"))
	assert.Contains(t, resp.Body.String(), "RATE_LIMIT_EXCEEDED")
}
