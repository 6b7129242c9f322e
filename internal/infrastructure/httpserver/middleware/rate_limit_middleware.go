package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/httpserver/helpers"
)

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiterService
	logger      *logrus.Logger
}

// NewRateLimitMiddleware accepts a nil limiter, in which case requests pass through.
func NewRateLimitMiddleware(rateLimiter ports.RateLimiterService, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, logger: logger}
}

func (r *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.rateLimiter == nil || c.Request().Method == http.MethodOptions {
				return next(c)
			}
			clientKey := helpers.ClientKey(c)

			allowed, remaining, limit, reset, rlErr := r.rateLimiter.Allow(c.Request().Context(), clientKey)
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

			if rlErr != nil {
				if r.logger != nil {
					r.logger.WithError(rlErr).WithField("client", clientKey).Warn("rate limiter error; allowing request (fail-open)")
				}
				return next(c)
			}

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			}
			return next(c)
		}
	}
}
