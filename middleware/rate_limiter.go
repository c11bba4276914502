// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// RateLimiter keeps a token bucket per client IP, with stricter buckets for
// sensitive endpoints.
type RateLimiter struct {
	ips            map[string]*rate.Limiter
	mu             sync.RWMutex
	defaultLimit   rate.Limit
	defaultBurst   int
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		ips:            make(map[string]*rate.Limiter),
		defaultLimit:   rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:   20,
		endpointLimits: make(map[string]endpointLimit),
	}

	// Login gets a strict bucket to slow down brute force attempts.
	limiter.endpointLimits["/api/admin/login"] = endpointLimit{
		limit: rate.Every(2 * time.Second),
		burst: 5,
	}

	return limiter
}

func (rl *RateLimiter) getLimiter(ip, path string) *rate.Limiter {
	key := ip + path

	rl.mu.RLock()
	limiter, exists := rl.ips[key]
	rl.mu.RUnlock()
	if exists {
		return limiter
	}

	limit, burst := rl.defaultLimit, rl.defaultBurst
	if el, ok := rl.endpointLimits[path]; ok {
		limit, burst = el.limit, el.burst
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if limiter, exists = rl.ips[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(limit, burst)
	rl.ips[key] = limiter
	return limiter
}

// RateLimit returns the Echo middleware.
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.getLimiter(c.RealIP(), c.Path())
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"message": "Too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}
