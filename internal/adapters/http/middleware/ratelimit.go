package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/quotable-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotable-api/internal/platform/logging"
)

// Rate limit response headers.
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// Rate limit defaults.
const (
	DefaultRateLimit      = 180
	DefaultRateWindow     = time.Minute
	DefaultRateMaxClients = 10000
)

// RateLimitConfig configures per-client request limiting.
type RateLimitConfig struct {
	// Limit is the number of requests a client may make per Window.
	Limit int

	Window time.Duration

	// MaxClients bounds the number of tracked client addresses. The least
	// recently seen client is forgotten first.
	MaxClients int

	// SkipPrefixes are path prefixes that are never limited.
	SkipPrefixes []string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// RateLimiter tracks a token bucket per client IP. A client may burst up to
// Limit requests, and tokens refill evenly over Window.
type RateLimiter struct {
	cfg      RateLimitConfig
	every    rate.Limit
	mu       sync.Mutex
	visitors *expirable.LRU[string, *rate.Limiter]
}

// NewRateLimiter creates a rate limiter, applying defaults for unset fields.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultRateLimit
	}

	if cfg.Window <= 0 {
		cfg.Window = DefaultRateWindow
	}

	if cfg.MaxClients <= 0 {
		cfg.MaxClients = DefaultRateMaxClients
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &RateLimiter{
		cfg:   cfg,
		every: rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds()),
		// An idle client's bucket is full again after one window.
		visitors: expirable.NewLRU[string, *rate.Limiter](cfg.MaxClients, nil, cfg.Window),
	}
}

// Allow consumes a token for key. It reports whether the request may proceed
// and how many whole tokens remain afterwards.
func (l *RateLimiter) Allow(key string) (allowed bool, remaining int) {
	l.mu.Lock()
	limiter, ok := l.visitors.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.every, l.cfg.Limit)
	}
	// Re-adding refreshes the idle expiry.
	l.visitors.Add(key, limiter)
	l.mu.Unlock()

	now := l.cfg.Now()
	allowed = limiter.AllowN(now, 1)
	remaining = max(int(math.Floor(limiter.TokensAt(now))), 0)

	return allowed, remaining
}

// resetSeconds is the time until a drained bucket holds one token again.
func (l *RateLimiter) resetSeconds() int {
	return max(int(math.Ceil(1/float64(l.every))), 1)
}

func (l *RateLimiter) skip(path string) bool {
	for _, prefix := range l.cfg.SkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// RateLimit returns middleware that limits requests per client IP.
// Limited requests are answered with 429 and the standard error body.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	limit := strconv.Itoa(limiter.cfg.Limit)

	return func(c *gin.Context) {
		if limiter.skip(c.Request.URL.Path) {
			c.Next()
			return
		}

		allowed, remaining := limiter.Allow(c.ClientIP())

		c.Header(HeaderRateLimitLimit, limit)
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			reset := strconv.Itoa(limiter.resetSeconds())
			c.Header(HeaderRateLimitReset, reset)
			c.Header(HeaderRetryAfter, reset)

			logging.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				slog.String("client_ip", c.ClientIP()),
				slog.String("path", c.Request.URL.Path),
			)

			dto.AbortWithStatus(c, http.StatusTooManyRequests, dto.MsgTooManyRequests)
			return
		}

		c.Next()
	}
}
