package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/hrygo/apptime/internal/errors"
)

// RateLimiter hands out one token bucket per client key.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter

	limit rate.Limit
	burst int
}

// NewRateLimiter creates a limiter allowing perSecond requests per key with the
// given burst. Non-positive values fall back to 10 requests per second, burst 20.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &RateLimiter{
		limits: make(map[string]*rate.Limiter),
		limit:  rate.Limit(perSecond),
		burst:  burst,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Wait waits for a request to be allowed.
// Returns error if the context is cancelled or the wait would exceed its deadline.
func (rl *RateLimiter) Wait(ctx context.Context, key string) error {
	return rl.getLimiter(key).Wait(ctx)
}

// Keys returns the number of tracked clients.
func (rl *RateLimiter) Keys() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}

// Middleware rejects requests from a client IP that exhausted its bucket with
// 429 and a RATE_LIMIT_EXCEEDED body.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				err := errors.RateLimitExceeded("too many requests")
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"code":    string(err.Code),
					"message": err.Message,
				})
			}
			return next(c)
		}
	}
}
