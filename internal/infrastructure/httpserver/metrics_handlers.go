package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "The total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "The HTTP request latencies in seconds",
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
}

// GetRequestsTotal returns the requests total metric for middleware use
func GetRequestsTotal() *prometheus.CounterVec {
	return requestsTotal
}

// GetRequestDuration returns the request duration metric for middleware use
func GetRequestDuration() *prometheus.HistogramVec {
	return requestDuration
}

// LogMetricsInitialization logs that metrics have been initialized
func (s *Server) LogMetricsInitialization() {
	if s.logger != nil {
		s.logger.WithFields(map[string]interface{}{
			"http_requests_total":                    "HTTP requests by method, endpoint, status",
			"http_request_duration":                  "HTTP request duration by method, endpoint",
			"profile_lookup_cache_requests_total":    "lookup cache hits and misses by endpoint",
			"profile_lookup_upstream_requests_total": "provider calls by endpoint and outcome",
			"profile_lookup_fallbacks_total":         "placeholder answers by endpoint",
			"metrics_endpoint":                       "/metrics",
		}).Debug("Available Prometheus metrics")
	}
}

// metricsEndpoint serves the default registry
func (s *Server) metricsEndpoint(c echo.Context) error {
	var handler http.Handler = promhttp.Handler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
