// Package metrics provides Prometheus metrics for the circle scoring core.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for penalty and ignored-event counters.
const (
	PenaltySample  = "sample_count"
	PenaltyClosure = "closure"

	IgnoredNotStarted = "not_started"
	IgnoredIdle       = "idle"
	IgnoredInvalid    = "invalid"
)

// Manager manages all Prometheus metrics for the circle core.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	enabled        bool
	constLabels    map[string]string
	registry       *prometheus.Registry

	// Gesture metrics
	gesturesStarted    prometheus.Counter
	gesturesScored     prometheus.Counter
	gesturesTooShort   prometheus.Counter
	gesturesDegenerate prometheus.Counter
	penalties          *prometheus.CounterVec
	eventsIgnored      *prometheus.CounterVec

	// Score quality
	scores         prometheus.Histogram
	strokePoints   prometheus.Histogram
	scoringLatency prometheus.Histogram

	// Event queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Attempt history
	historySize    prometheus.Gauge
	historyEvicted prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "circle",
		subsystem:      "game",
		latencyBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		enabled:        true,
		constLabels:    make(map[string]string),
		registry:       prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.gesturesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "gestures_started_total",
		Help:        "Total number of gestures begun",
		ConstLabels: m.constLabels,
	})

	m.gesturesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "gestures_scored_total",
		Help:        "Total number of gestures ended and scored",
		ConstLabels: m.constLabels,
	})

	m.gesturesTooShort = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "gestures_too_short_total",
		Help:        "Gestures given the fallback score because they had too few points",
		ConstLabels: m.constLabels,
	})

	m.gesturesDegenerate = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "gestures_degenerate_total",
		Help:        "Gestures whose average radius was zero or not finite",
		ConstLabels: m.constLabels,
	})

	m.penalties = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "penalties_total",
		Help:        "Score penalties applied, by kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.eventsIgnored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_ignored_total",
		Help:        "Pointer events dropped without changing state, by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.scores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "score",
		Help:        "Distribution of circle scores",
		Buckets:     prometheus.LinearBuckets(10, 10, 10),
		ConstLabels: m.constLabels,
	})

	m.strokePoints = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stroke_points",
		Help:        "Number of points per finished stroke",
		Buckets:     prometheus.ExponentialBuckets(8, 2, 10),
		ConstLabels: m.constLabels,
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scoring_latency_milliseconds",
		Help:        "Time spent scoring a finished stroke in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_size",
		Help:        "Current number of pointer events waiting in the queue",
		ConstLabels: m.constLabels,
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_capacity",
		Help:        "Maximum number of pointer events the queue holds",
		ConstLabels: m.constLabels,
	})

	m.queueEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_enqueued_total",
		Help:        "Pointer events accepted by the queue",
		ConstLabels: m.constLabels,
	})

	m.queueDequeued = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_dequeued_total",
		Help:        "Pointer events handed to the consumer",
		ConstLabels: m.constLabels,
	})

	m.queueEnqueueErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_enqueue_errors_total",
		Help:        "Pointer events rejected by the queue, by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.historySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "history_size",
		Help:        "Finished gestures held in the attempt history",
		ConstLabels: m.constLabels,
	})

	m.historyEvicted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "history_evicted_total",
		Help:        "Lowest-ranked gestures dropped from a full attempt history",
		ConstLabels: m.constLabels,
	})
}

// RecordGestureStarted counts a begun gesture.
func (m *Manager) RecordGestureStarted() {
	if m.enabled {
		m.gesturesStarted.Inc()
	}
}

// RecordGestureScored records a finished gesture: its score, size, scoring
// latency and which policy branches it hit.
func (m *Manager) RecordGestureScored(g Gesture) {
	if !m.enabled {
		return
	}
	m.gesturesScored.Inc()
	m.scores.Observe(float64(g.Score))
	m.strokePoints.Observe(float64(g.Points))
	m.scoringLatency.Observe(g.LatencyMs)
	if g.TooShort {
		m.gesturesTooShort.Inc()
	}
	if g.Degenerate {
		m.gesturesDegenerate.Inc()
	}
	if g.SamplePenalty {
		m.penalties.WithLabelValues(PenaltySample).Inc()
	}
	if g.ClosurePenalty {
		m.penalties.WithLabelValues(PenaltyClosure).Inc()
	}
}

// RecordEventIgnored counts a dropped pointer event.
func (m *Manager) RecordEventIgnored(reason string) {
	if m.enabled {
		m.eventsIgnored.WithLabelValues(reason).Inc()
	}
}

// UpdateQueueSize sets the queue size gauge.
func (m *Manager) UpdateQueueSize(size int) {
	if m.enabled {
		m.queueSize.Set(float64(size))
	}
}

// UpdateQueueCapacity sets the queue capacity gauge.
func (m *Manager) UpdateQueueCapacity(capacity int) {
	if m.enabled {
		m.queueCapacity.Set(float64(capacity))
	}
}

// RecordQueueEnqueue counts an accepted event.
func (m *Manager) RecordQueueEnqueue() {
	if m.enabled {
		m.queueEnqueued.Inc()
	}
}

// RecordQueueDequeue counts a delivered event.
func (m *Manager) RecordQueueDequeue() {
	if m.enabled {
		m.queueDequeued.Inc()
	}
}

// RecordQueueEnqueueError counts a rejected event.
func (m *Manager) RecordQueueEnqueueError(reason string) {
	if m.enabled {
		m.queueEnqueueErrors.WithLabelValues(reason).Inc()
	}
}

// UpdateHistorySize sets the attempt history size gauge.
func (m *Manager) UpdateHistorySize(size int) {
	if m.enabled {
		m.historySize.Set(float64(size))
	}
}

// RecordHistoryEviction counts a gesture dropped from a full history.
func (m *Manager) RecordHistoryEviction() {
	if m.enabled {
		m.historyEvicted.Inc()
	}
}

// Registry returns the registry the manager's metrics live in.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric in the manager's registry to path in
// the Prometheus text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExport, path, err)
	}
	return nil
}

// Gesture summarises one scored stroke for RecordGestureScored.
type Gesture struct {
	Score          int
	Points         int
	LatencyMs      float64
	TooShort       bool
	Degenerate     bool
	SamplePenalty  bool
	ClosurePenalty bool
}

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the process-wide registry.
func GetRegistry() *prometheus.Registry { return customRegistry }

// WriteTextfile writes the process-wide metrics to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }
