package harness

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/selbench/internal/store"
)

const metricsNamespace = "selbench"

const sweepSubsystem = "sweep"

// Metrics collects Prometheus metrics for a sweep.
//
// Each Metrics owns its registry, so several sweeps (or tests) never
// collide on the global one. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// MeasurementsTotal counts measurements.
	// Labels: algorithm, status (ok, error)
	MeasurementsTotal *prometheus.CounterVec

	// DurationSeconds observes engine wall-clock time.
	// Labels: algorithm, distribution
	DurationSeconds *prometheus.HistogramVec

	// Comparisons observes comparison counts.
	// Labels: algorithm, distribution
	Comparisons *prometheus.HistogramVec

	// MemoryBytes holds the most recent memory estimate.
	// Labels: algorithm, distribution, size
	MemoryBytes *prometheus.GaugeVec
}

// NewMetrics creates the sweep metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		MeasurementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: sweepSubsystem,
			Name:      "measurements_total",
			Help:      "Total engine invocations by algorithm and status",
		}, []string{"algorithm", "status"}),
		DurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: sweepSubsystem,
			Name:      "duration_seconds",
			Help:      "Engine invocation wall-clock time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, []string{"algorithm", "distribution"}),
		Comparisons: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: sweepSubsystem,
			Name:      "comparisons",
			Help:      "Element comparisons per engine invocation",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 9),
		}, []string{"algorithm", "distribution"}),
		MemoryBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: sweepSubsystem,
			Name:      "memory_bytes",
			Help:      "Most recent memory estimate in bytes",
		}, []string{"algorithm", "distribution", "size"}),
	}
}

// Registry returns the registry holding the sweep metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Observe records one measurement.
func (m *Metrics) Observe(ms store.Measurement) {
	if m == nil {
		return
	}
	if ms.Failed() {
		m.MeasurementsTotal.WithLabelValues(ms.Algorithm, "error").Inc()
		return
	}
	m.MeasurementsTotal.WithLabelValues(ms.Algorithm, "ok").Inc()
	m.DurationSeconds.WithLabelValues(ms.Algorithm, ms.Distribution).Observe(ms.ElapsedMillis / 1000)
	m.Comparisons.WithLabelValues(ms.Algorithm, ms.Distribution).Observe(float64(ms.Comparisons))
	m.MemoryBytes.WithLabelValues(ms.Algorithm, ms.Distribution, strconv.Itoa(ms.Size)).Set(float64(ms.MemoryBytes))
}

// WriteTextfile writes the metrics in the Prometheus text exposition
// format, for pickup by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
