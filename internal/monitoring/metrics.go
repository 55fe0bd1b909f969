// Package monitoring - metrics.go exports operational counters to
// Prometheus.
//
// DESIGN: Replaces the atomic-counter-only collector with real
// prometheus.Collector registrations, scraped at /metrics:
//   - requests_total / successes_total, labeled by tool
//   - cache_hits/misses_total
//   - fallback_degraded_total, conflicts_total, sources failed
//   - request latency histogram
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector collects operational metrics and exposes them to a
// prometheus registry.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	successesTotal  *prometheus.CounterVec
	cacheHitsTotal  prometheus.Counter
	cacheMissTotal  prometheus.Counter
	degradedTotal   *prometheus.CounterVec
	conflictsTotal  *prometheus.CounterVec
	sourceFailTotal *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// NewMetricsCollector creates and registers the gateway's metrics on
// registry.
func NewMetricsCollector(registry *prometheus.Registry) *MetricsCollector {
	mc := &MetricsCollector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total tool invocations by tool name.",
		}, []string{"tool"}),
		successesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_successes_total",
			Help: "Successful tool invocations by tool name.",
		}, []string{"tool"}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gateway_cache_hits_total",
			Help: "Cache hits across all capability fetches.",
		}),
		cacheMissTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gateway_cache_misses_total",
			Help: "Cache misses across all capability fetches.",
		}),
		degradedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_degraded_fetches_total",
			Help: "Fetches served by a non-primary source.",
		}, []string{"source"}),
		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_conflicts_total",
			Help: "Conflicts resolved, by resolution strategy.",
		}, []string{"resolution"}),
		sourceFailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_source_failures_total",
			Help: "Adapter-level failures, by source and error kind.",
		}, []string{"source", "kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_request_latency_seconds",
			Help:    "Tool invocation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
	}

	registry.MustRegister(
		mc.requestsTotal, mc.successesTotal, mc.cacheHitsTotal, mc.cacheMissTotal,
		mc.degradedTotal, mc.conflictsTotal, mc.sourceFailTotal, mc.latency,
	)
	return mc
}

// RecordRequest records one tool invocation's outcome and latency.
func (mc *MetricsCollector) RecordRequest(tool string, success bool, elapsed time.Duration) {
	mc.requestsTotal.WithLabelValues(tool).Inc()
	if success {
		mc.successesTotal.WithLabelValues(tool).Inc()
	}
	mc.latency.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// RecordCacheHit records a capability-level cache hit.
func (mc *MetricsCollector) RecordCacheHit() { mc.cacheHitsTotal.Inc() }

// RecordCacheMiss records a capability-level cache miss.
func (mc *MetricsCollector) RecordCacheMiss() { mc.cacheMissTotal.Inc() }

// RecordDegraded records a fetch served by a non-primary source.
func (mc *MetricsCollector) RecordDegraded(source string) {
	mc.degradedTotal.WithLabelValues(source).Inc()
}

// RecordConflict records a resolved conflict by strategy.
func (mc *MetricsCollector) RecordConflict(resolution string) {
	mc.conflictsTotal.WithLabelValues(resolution).Inc()
}

// RecordSourceFailure records one adapter-level failure.
func (mc *MetricsCollector) RecordSourceFailure(source, kind string) {
	mc.sourceFailTotal.WithLabelValues(source, kind).Inc()
}
