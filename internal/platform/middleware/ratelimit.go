package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns default rate limiting settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// bucket is a token bucket refilled lazily on each check.
type bucket struct {
	tokens float64
	last   time.Time
}

type limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{
		buckets: make(map[string]*bucket),
		rate:    cfg.RequestsPerSecond,
		burst:   float64(cfg.BurstSize),
	}
}

// take refills the key's bucket for elapsed time and consumes one token.
// It reports whether the request is allowed and, if not, how many seconds
// the caller should wait before retrying.
func (l *limiter) take(key string, now time.Time) (allowed bool, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.last).Seconds() * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if l.rate <= 0 {
		return false, 1
	}
	return false, int((1-b.tokens)/l.rate) + 1
}

// RateLimit returns a per-caller token bucket middleware. Requests are
// keyed by client IP, scoped by user ID when authenticated.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	lim := newLimiter(cfg)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if userID, ok := c.Get("user_id").(string); ok && userID != "" {
				key = userID + ":" + key
			}

			allowed, retryAfter := lim.take(key, time.Now())
			c.Response().Header().Set("X-RateLimit-Limit", limitHeader)
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
