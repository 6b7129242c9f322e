package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger == nil {
				return next(c)
			}
			start := time.Now()
			fields := logrus.Fields{
				"method":     c.Request().Method,
				"path":       c.Path(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}
			m.logger.WithFields(fields).Debug("incoming request")

			err := next(c)

			fields["duration_ms"] = time.Since(start).Milliseconds()
			if kind, outcome, ok := helpers.GetLookupOutcomeRaw(c); ok {
				fields["lookup"] = kind
				fields["outcome"] = outcome
				m.logger.WithFields(fields).Info("lookup served")
			}
			return err
		}
	}
}
