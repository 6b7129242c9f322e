// Package metrics exports lookup pipeline counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

const namespace = "profile_lookup"

// LookupMetrics implements ports.LookupMetrics.
type LookupMetrics struct {
	cacheRequests *prometheus.CounterVec
	upstream      *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	cacheEntries  *prometheus.GaugeVec
}

var _ ports.LookupMetrics = (*LookupMetrics)(nil)

// NewLookupMetrics creates the collectors and registers them with reg.
func NewLookupMetrics(reg prometheus.Registerer) (*LookupMetrics, error) {
	m := &LookupMetrics{
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Lookup cache queries by endpoint and result (hit or miss).",
		}, []string{"endpoint", "result"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream provider calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Lookups answered with a placeholder instead of provider data.",
		}, []string{"endpoint"}),
		cacheEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Entries currently held by the lookup cache, stale ones included.",
		}, []string{"endpoint"}),
	}
	for _, c := range []prometheus.Collector{m.cacheRequests, m.upstream, m.fallbacks, m.cacheEntries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *LookupMetrics) CacheHit(endpoint string) {
	m.cacheRequests.WithLabelValues(endpoint, "hit").Inc()
}

func (m *LookupMetrics) CacheMiss(endpoint string) {
	m.cacheRequests.WithLabelValues(endpoint, "miss").Inc()
}

func (m *LookupMetrics) UpstreamOutcome(endpoint, outcome string) {
	m.upstream.WithLabelValues(endpoint, outcome).Inc()
}

func (m *LookupMetrics) Fallback(endpoint string) {
	m.fallbacks.WithLabelValues(endpoint).Inc()
}

func (m *LookupMetrics) CacheSize(endpoint string, size int) {
	m.cacheEntries.WithLabelValues(endpoint).Set(float64(size))
}
