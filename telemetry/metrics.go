// Package telemetry provides Prometheus and OpenTelemetry instruments for cells.
package telemetry

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnatoleLucet/cell"
)

// MetricsConfig names and places the engine metrics.
// Defaults: namespace "cell", prometheus.DefBuckets, prometheus.DefaultRegisterer.
type MetricsConfig struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels

	// shared by the recompute and watch histograms
	Buckets []float64

	Registry prometheus.Registerer
}

type MetricsOption func(*MetricsConfig)

func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels labels every engine metric, e.g. with the graph it observes.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the duration buckets, in seconds.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry registers the metrics on registry instead of the default one.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "cell",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts engine activity. Cell ids are not used as labels.
type Metrics struct {
	writes        prometheus.Counter
	invalidations prometheus.Counter
	recomputes    prometheus.Counter
	recomputeTime prometheus.Histogram
	watchTriggers prometheus.Counter
	watchTime     prometheus.Histogram
}

var _ cell.Instrument = (*Metrics)(nil)

// NewMetrics registers the engine metrics.
//
// Metrics collected:
//   - cell_writes_total
//   - cell_invalidations_total
//   - cell_recomputes_total
//   - cell_recompute_duration_seconds
//   - cell_watch_triggers_total
//   - cell_watch_duration_seconds
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		writes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of writes to plain cells",
			ConstLabels: config.ConstLabels,
		}),

		invalidations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "invalidations_total",
			Help:        "Total number of times a computed cell was marked dirty",
			ConstLabels: config.ConstLabels,
		}),

		recomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "recomputes_total",
			Help:        "Total number of computed cell evaluations",
			ConstLabels: config.ConstLabels,
		}),

		recomputeTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "recompute_duration_seconds",
			Help:        "Computed cell evaluation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		watchTriggers: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "watch_triggers_total",
			Help:        "Total number of watch callback invocations",
			ConstLabels: config.ConstLabels,
		}),

		watchTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "watch_duration_seconds",
			Help:        "Watch callback duration in seconds, including the cascade it triggers",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (m *Metrics) Written(ulid.ULID) {
	m.writes.Inc()
}

func (m *Metrics) Invalidated(ulid.ULID) {
	m.invalidations.Inc()
}

func (m *Metrics) Recomputed(_ ulid.ULID, took time.Duration) {
	m.recomputes.Inc()
	m.recomputeTime.Observe(took.Seconds())
}

func (m *Metrics) WatchTriggered(ulid.ULID, int) func() {
	m.watchTriggers.Inc()

	start := time.Now()
	return func() {
		m.watchTime.Observe(time.Since(start).Seconds())
	}
}
