package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Lookup methods
const (
	MethodSearch  = "search"
	MethodReverse = "reverse"
)

// Lookup outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Metrics holds the Prometheus collectors for geocoding lookups.
type Metrics struct {
	Requests         *prometheus.CounterVec   // labels: method, outcome
	Cache            *prometheus.CounterVec   // labels: method, result={hit,miss}
	UpstreamDuration *prometheus.HistogramVec // labels: method
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.Requests, m.Cache, m.UpstreamDuration)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so tests
// can build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_finder",
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by method and outcome.",
		}, []string{"method", "outcome"}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_finder",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "location_finder",
			Name:      "geocode_upstream_duration_seconds",
			Help:      "Nominatim request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
	}
}

func (m *Metrics) ObserveRequest(method, outcome string) {
	m.Requests.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) ObserveCache(method string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.Cache.WithLabelValues(method, result).Inc()
}

func (m *Metrics) ObserveUpstream(method string, seconds float64) {
	m.UpstreamDuration.WithLabelValues(method).Observe(seconds)
}
