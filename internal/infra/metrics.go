package infra

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the relay and discovery.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Discovery metrics
	DiscoveryRuns            *prometheus.CounterVec
	DiscoveryPartialFailures *prometheus.CounterVec
	DiscoveryPairs           *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "folyo"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UpstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream HTTP requests by provider, endpoint and status code",
		}, []string{"provider", "endpoint", "code"}),
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream HTTP request latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "endpoint"}),

		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Upstream response cache hits",
		}, []string{"provider"}),
		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Upstream response cache misses",
		}, []string{"provider"}),

		DiscoveryRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "runs_total",
			Help:      "Discovery runs by strategy and outcome",
		}, []string{"strategy", "status"}),
		DiscoveryPartialFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "partial_failures_total",
			Help:      "Fan-out branches that failed and contributed no pairs",
		}, []string{"strategy", "chain"}),
		DiscoveryPairs: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "pairs_returned",
			Help:      "Number of pairs returned per discovery run",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 50, 100},
		}, []string{"strategy"}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(provider, endpoint, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(provider, endpoint, code).Inc()
	m.UpstreamLatency.WithLabelValues(provider, endpoint).Observe(elapsed.Seconds())
}

// ObserveCache records a cache lookup result.
func (m *Metrics) ObserveCache(provider string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.WithLabelValues(provider).Inc()
		return
	}
	m.CacheMisses.WithLabelValues(provider).Inc()
}

// ObserveDiscovery records the outcome of one strategy run.
func (m *Metrics) ObserveDiscovery(strategy string, pairs int, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DiscoveryRuns.WithLabelValues(strategy, status).Inc()
	if err == nil {
		m.DiscoveryPairs.WithLabelValues(strategy).Observe(float64(pairs))
	}
}

// PartialFailure records one failed fan-out branch.
func (m *Metrics) PartialFailure(strategy, chain string) {
	if m == nil {
		return
	}
	m.DiscoveryPartialFailures.WithLabelValues(strategy, chain).Inc()
}
