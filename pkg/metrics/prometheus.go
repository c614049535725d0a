// Package metrics provides Prometheus metrics for the certamen arena service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// msPerSecond converts observed durations into millisecond buckets.
const msPerSecond = 1000.0

// defaultDurationBuckets covers the sub-millisecond pipeline stages up
// to slow multi-second HTTP requests, in milliseconds.
var defaultDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // shared bucket layout

// Manager manages all Prometheus metrics for the certamen service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Pipeline Metrics - What the arena actually does
	simulations          prometheus.Counter
	simulationsRejected  *prometheus.CounterVec
	simulationDuration   prometheus.Histogram
	stageDuration        *prometheus.HistogramVec
	crossEvaluations     prometheus.Counter
	responsesSynthesized prometheus.Counter
	arbiterConfidence    prometheus.Histogram
	selections           *prometheus.CounterVec
	lastSimulationUnix   prometheus.Gauge

	// Catalog Metrics
	registryModels prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	// Error Metrics - Detailed error tracking
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "certamen",
		subsystem:        "arena",
		histogramBuckets: defaultDurationBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by
	// default), with any custom labels stamped onto every series.
	registerer := m.registry
	if len(m.customLabels) > 0 {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels(m.customLabels), registerer)
	}
	auto := promauto.With(registerer)

	// Pipeline Metrics - Focus on what the arena produces
	m.simulations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulations_total",
		Help:      "Total number of simulations completed successfully",
	})

	m.simulationsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "simulations_rejected_total",
			Help:      "Total number of rejected submissions by reason",
		},
		[]string{"reason"},
	)

	m.simulationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulation_duration_milliseconds",
		Help:      "Histogram of full pipeline duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Histogram of per-stage pipeline duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)

	m.crossEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cross_evaluations_total",
		Help:      "Total number of judge and target pairs scored",
	})

	m.responsesSynthesized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "responses_synthesized_total",
		Help:      "Total number of model responses synthesized",
	})

	m.arbiterConfidence = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "arbiter_confidence",
		Help:      "Distribution of arbiter placement confidence",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})

	m.selections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "selections_total",
			Help:      "Total number of accepted selections by size",
		},
		[]string{"size"},
	)

	m.lastSimulationUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_simulation_unix",
		Help:      "Unix timestamp of the last completed simulation",
	})

	// Catalog Metrics
	m.registryModels = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registry_models",
		Help:      "Number of models in the catalog, arbiter included",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_in_flight_requests",
		Help:      "Number of HTTP requests currently being served",
	})

	// Error Metrics - Detailed error tracking
	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// Pipeline Metrics Functions.

// RecordSimulation records one completed simulation and its duration.
func RecordSimulation(d time.Duration) {
	globalManager.simulations.Inc()
	globalManager.simulationDuration.Observe(d.Seconds() * msPerSecond)
	globalManager.lastSimulationUnix.SetToCurrentTime()
}

// RecordSimulationRejected increments the rejected submissions counter.
// Known reasons are "selection" and "prompt".
func RecordSimulationRejected(reason string) {
	globalManager.simulationsRejected.WithLabelValues(reason).Inc()
}

// RecordStageDuration records the duration of one pipeline stage.
func RecordStageDuration(stage string, d time.Duration) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(d.Seconds() * msPerSecond)
}

// RecordCrossEvaluations adds the number of pairs scored in one run.
func RecordCrossEvaluations(count int) {
	globalManager.crossEvaluations.Add(float64(count))
}

// RecordResponsesSynthesized adds the number of responses produced in one run.
func RecordResponsesSynthesized(count int) {
	globalManager.responsesSynthesized.Add(float64(count))
}

// RecordArbiterConfidence records one arbiter placement confidence.
func RecordArbiterConfidence(confidence float64) {
	globalManager.arbiterConfidence.Observe(confidence)
}

// RecordSelectionSize increments the accepted selections counter for a size.
func RecordSelectionSize(size int) {
	globalManager.selections.WithLabelValues(strconv.Itoa(size)).Inc()
}

// Catalog Metrics Functions.

// UpdateRegistryModels sets the catalog size.
func UpdateRegistryModels(count int) {
	globalManager.registryModels.Set(float64(count))
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// IncHTTPInFlight increments the in-flight request gauge.
func IncHTTPInFlight() {
	globalManager.httpInFlight.Inc()
}

// DecHTTPInFlight decrements the in-flight request gauge.
func DecHTTPInFlight() {
	globalManager.httpInFlight.Dec()
}

// Error Metrics Functions.

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
