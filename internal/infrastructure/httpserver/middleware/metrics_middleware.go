package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware records request counts and latencies per route template
type MetricsMiddleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetricsMiddleware creates a new metrics middleware instance
func NewMetricsMiddleware(requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

// CollectHTTPMetrics creates middleware that collects HTTP request metrics
func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return echo.MiddlewareFunc(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Render errors here so the recorded status is the one the client sees.
			if err := next(c); err != nil {
				c.Error(err)
			}

			duration := time.Since(start).Seconds()
			method := c.Request().Method
			path := c.Path()
			if path == "" || path == "/*" {
				// unrouted paths come from arbitrary clients; keep label cardinality bounded
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			m.requestsTotal.WithLabelValues(method, path, status).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(duration)

			return nil
		}
	})
}
