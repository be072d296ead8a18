// Package metrics exposes Prometheus collectors for the ledger, version
// chains and comparisons.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "research_ledger"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics holds every collector the services report to. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	appendTotal     *prometheus.CounterVec
	appendDuration  prometheus.Histogram
	appendRetries   prometheus.Counter
	verifyTotal     *prometheus.CounterVec
	verifyEntries   prometheus.Gauge
	versionOps      *prometheus.CounterVec
	comparisonTotal *prometheus.CounterVec
	diffLines       *prometheus.HistogramVec
}

// New creates a registry with Go runtime collectors and all service metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		appendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "appends_total",
			Help:      "Ledger append attempts by event type and outcome.",
		}, []string{"event_type", "outcome"}),
		appendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "append_duration_seconds",
			Help:      "Time to append one ledger entry, including retries.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		appendRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "append_retries_total",
			Help:      "Ledger appends retried after a concurrency conflict.",
		}),
		verifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "verifications_total",
			Help:      "Chain verifications by result.",
		}, []string{"result"}),
		verifyEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "last_verified_entries",
			Help:      "Entries validated by the most recent verification.",
		}),
		versionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "versions",
			Name:      "operations_total",
			Help:      "Version chain operations by kind, operation and outcome.",
		}, []string{"kind", "operation", "outcome"}),
		comparisonTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comparisons",
			Name:      "total",
			Help:      "Computed comparisons by sensitivity flag.",
		}, []string{"sensitive"}),
		diffLines: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "comparisons",
			Name:      "lines",
			Help:      "Changed line counts per comparison.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"op"}),
	}

	reg.MustRegister(
		m.appendTotal, m.appendDuration, m.appendRetries,
		m.verifyTotal, m.verifyEntries,
		m.versionOps,
		m.comparisonTotal, m.diffLines,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveAppend records one finished ledger append.
func (m *Metrics) ObserveAppend(eventType, outcome string, retries int, d time.Duration) {
	if m == nil {
		return
	}
	m.appendTotal.WithLabelValues(eventType, outcome).Inc()
	m.appendDuration.Observe(d.Seconds())
	if retries > 0 {
		m.appendRetries.Add(float64(retries))
	}
}

// ObserveVerify records a chain verification result.
func (m *Metrics) ObserveVerify(valid bool, entries int) {
	if m == nil {
		return
	}
	result := "valid"
	if !valid {
		result = "broken"
	}
	m.verifyTotal.WithLabelValues(result).Inc()
	m.verifyEntries.Set(float64(entries))
}

// ObserveVersionOp records a version chain operation.
func (m *Metrics) ObserveVersionOp(kind, op, outcome string) {
	if m == nil {
		return
	}
	m.versionOps.WithLabelValues(kind, op, outcome).Inc()
}

// ObserveComparison records a computed comparison.
func (m *Metrics) ObserveComparison(added, removed int, sensitive bool) {
	if m == nil {
		return
	}
	flag := "false"
	if sensitive {
		flag = "true"
	}
	m.comparisonTotal.WithLabelValues(flag).Inc()
	m.diffLines.WithLabelValues("insert").Observe(float64(added))
	m.diffLines.WithLabelValues("delete").Observe(float64(removed))
}

// Outcome classifies err for the outcome label.
func Outcome(err error, isConflict func(error) bool) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case isConflict != nil && isConflict(err):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
