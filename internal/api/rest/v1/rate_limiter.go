package v1

import (
	"net/http"
	"sync"
	"time"

	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idle limiters are dropped after this long
const limiterIdleTimeout = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
	logger    logger.Logger
}

// NewRateLimiter creates a limiter allowing settings.RequestsPerMinute per IP.
// A zero rate disables limiting.
func NewRateLimiter(settings config.RateLimitSettings, logger logger.Logger) *RateLimiter {
	limit := rate.Inf
	if settings.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(settings.RequestsPerMinute))
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    settings.Burst,
		now:      time.Now,
		logger:   logger,
	}
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTimeout {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware answers 429 once a client IP has used up its bucket
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()
		if !l.allow(ip) {
			metrics.RateLimited.Inc()
			l.logger.Warn("Rate limit exceeded for ", ip, " on ", ctx.FullPath())
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded, try again later"})
			return
		}
		ctx.Next()
	}
}
