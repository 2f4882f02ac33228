//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, limiter *RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", limiter.Middleware(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimitSettings{RequestsPerMinute: 1, Burst: 2}, testutil.SetupTestLogger(t))
	r := newLimitedRouter(t, limiter)

	for i := 0; i < 2; i++ {
		w := PerformRequest(r, http.MethodGet, "/ping", nil, "", "")
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	w := PerformRequest(r, http.MethodGet, "/ping", nil, "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimiter_ZeroRateDisablesLimiting(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimitSettings{}, testutil.SetupTestLogger(t))
	r := newLimitedRouter(t, limiter)

	for i := 0; i < 20; i++ {
		w := PerformRequest(r, http.MethodGet, "/ping", nil, "", "")
		require.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimiter_IdleVisitorsAreSwept(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimitSettings{RequestsPerMinute: 60, Burst: 1}, testutil.SetupTestLogger(t))
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.False(t, limiter.allow("10.0.0.1"))
	assert.True(t, limiter.allow("10.0.0.2"))
	assert.Len(t, limiter.visitors, 2)

	now = now.Add(limiterIdleTimeout + time.Minute)
	assert.True(t, limiter.allow("10.0.0.3"))
	assert.Len(t, limiter.visitors, 1)
}
