package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/slotbook/slotbook/internal/platform/kvstore"
)

// RateLimitConfig holds rate limiting configuration. Counters live in the
// shared key-value store so limits hold across server replicas.
type RateLimitConfig struct {
	RequestsPerMinute int
	Store             kvstore.Store
}

// RateLimit returns a fixed-window rate limiting middleware. Each client gets
// RequestsPerMinute requests per one-minute window, keyed by tenant and IP.
// Store errors fail open so a key-value outage never takes booking down.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.RequestsPerMinute <= 0 || cfg.Store == nil {
				return next(c)
			}

			// Key by IP, scoped by tenant when known.
			key := "ratelimit:" + c.RealIP()
			if tenantID, ok := c.Get("jwt_tenant_id").(string); ok && tenantID != "" {
				key = "ratelimit:" + tenantID + ":" + c.RealIP()
			}

			count, err := cfg.Store.Incr(c.Request().Context(), key, time.Minute)
			if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
				return next(c)
			}

			limit := int64(cfg.RequestsPerMinute)
			remaining := limit - count
			if remaining < 0 {
				remaining = 0
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > limit {
				c.Response().Header().Set("Retry-After", "60")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
