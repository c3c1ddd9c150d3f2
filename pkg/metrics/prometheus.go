// Package metrics provides Prometheus metrics for the Stuff+ rating service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	fetchBuckets     []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Rating outcomes
	pitchersRated    *prometheus.CounterVec
	pitchersSkipped  prometheus.Counter
	trackingFailures *prometheus.CounterVec
	pitchesScored    *prometheus.CounterVec
	pitchesUndefined *prometheus.CounterVec
	degenerateFits   prometheus.Counter
	rateAllDuration  prometheus.Histogram
	lastRunUnix      prometheus.Gauge
	runsStored       prometheus.Gauge

	// Upstream fetches
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Process
	memoryBytes prometheus.Gauge
	goroutines  prometheus.Gauge
	gcPauseMs   prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "otv",
		subsystem:        "stuffplus",
		histogramBuckets: prometheus.DefBuckets,
		fetchBuckets:     []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // collector table
	auto := promauto.With(m.registry)

	m.pitchersRated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pitchers_rated_total",
		Help:        "Pitchers rated, by result source (Statcast or Scouting)",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.pitchersSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pitchers_skipped_total",
		Help:        "Pitchers dropped from a run because tracking data was unavailable",
		ConstLabels: m.constLabels,
	})

	m.trackingFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tracking_failures_total",
		Help:        "Tracking path failures by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.pitchesScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pitches_scored_total",
		Help:        "Pitches that received a defined raw score, by family",
		ConstLabels: m.constLabels,
	}, []string{"family"})

	m.pitchesUndefined = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pitches_undefined_total",
		Help:        "Pitches left unscored, by family",
		ConstLabels: m.constLabels,
	}, []string{"family"})

	m.degenerateFits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "standardization_degenerate_total",
		Help:        "Standardizations that collapsed to the center because the spread was zero",
		ConstLabels: m.constLabels,
	})

	m.rateAllDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rate_all_duration_milliseconds",
		Help:        "Wall time of an org rating run",
		Buckets:     m.fetchBuckets,
		ConstLabels: m.constLabels,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_unix",
		Help:        "Completion time of the most recent org run",
		ConstLabels: m.constLabels,
	})

	m.runsStored = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_stored",
		Help:        "Org runs retained in memory",
		ConstLabels: m.constLabels,
	})

	m.fetchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_latency_milliseconds",
		Help:        "Upstream fetch latency by source (roster, identity, tracking)",
		Buckets:     m.fetchBuckets,
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_errors_total",
		Help:        "Upstream fetch errors by source",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "HTTP errors by endpoint, method and error kind",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.memoryBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.goroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Live goroutines",
		ConstLabels: m.constLabels,
	})

	m.gcPauseMs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_avg_milliseconds",
		Help:        "Average GC pause since start",
		ConstLabels: m.constLabels,
	})
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.memoryBytes.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(n int) {
	if m.enabled {
		m.goroutines.Set(float64(n))
	}
}

// RecordSystemGCPauseTime sets the average GC pause gauge.
func (m *Manager) RecordSystemGCPauseTime(ms float64) {
	if m.enabled {
		m.gcPauseMs.Set(ms)
	}
}

// RecordPitcherRated counts a rated pitcher under its result source.
func (m *Manager) RecordPitcherRated(source string) {
	if m.enabled {
		m.pitchersRated.WithLabelValues(source).Inc()
	}
}

// RecordPitcherSkipped counts a pitcher dropped from a run.
func (m *Manager) RecordPitcherSkipped() {
	if m.enabled {
		m.pitchersSkipped.Inc()
	}
}

// RecordTrackingFailure counts a failed tracking path.
func (m *Manager) RecordTrackingFailure(reason string) {
	if m.enabled {
		m.trackingFailures.WithLabelValues(reason).Inc()
	}
}

// RecordPitch counts one pitch as scored or undefined.
func (m *Manager) RecordPitch(family string, defined bool) {
	if !m.enabled {
		return
	}
	if defined {
		m.pitchesScored.WithLabelValues(family).Inc()
		return
	}
	m.pitchesUndefined.WithLabelValues(family).Inc()
}

// RecordDegenerateStandardization counts a zero-spread fit.
func (m *Manager) RecordDegenerateStandardization() {
	if m.enabled {
		m.degenerateFits.Inc()
	}
}

// RecordRateAll records a finished org run.
func (m *Manager) RecordRateAll(took time.Duration, finished time.Time) {
	if !m.enabled {
		return
	}
	m.rateAllDuration.Observe(float64(took.Milliseconds()))
	m.lastRunUnix.Set(float64(finished.Unix()))
}

// UpdateRunsStored sets the number of retained runs.
func (m *Manager) UpdateRunsStored(n int) {
	if m.enabled {
		m.runsStored.Set(float64(n))
	}
}

// RecordFetch records one upstream call; err marks it failed.
func (m *Manager) RecordFetch(source string, took time.Duration, err error) {
	if !m.enabled {
		return
	}
	m.fetchLatency.WithLabelValues(source).Observe(float64(took.Milliseconds()))
	if err != nil {
		m.fetchErrors.WithLabelValues(source).Inc()
	}
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error with its kind.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// Default returns the process-wide manager bound to GetRegistry.
func Default() *Manager { return globalManager }

// RecordPitcherRated records on the default manager.
func RecordPitcherRated(source string) { globalManager.RecordPitcherRated(source) }

// RecordPitcherSkipped records on the default manager.
func RecordPitcherSkipped() { globalManager.RecordPitcherSkipped() }

// RecordTrackingFailure records on the default manager.
func RecordTrackingFailure(reason string) { globalManager.RecordTrackingFailure(reason) }

// RecordPitch records on the default manager.
func RecordPitch(family string, defined bool) { globalManager.RecordPitch(family, defined) }

// RecordDegenerateStandardization records on the default manager.
func RecordDegenerateStandardization() { globalManager.RecordDegenerateStandardization() }

// RecordRateAll records on the default manager.
func RecordRateAll(took time.Duration, finished time.Time) {
	globalManager.RecordRateAll(took, finished)
}

// UpdateRunsStored records on the default manager.
func UpdateRunsStored(n int) { globalManager.UpdateRunsStored(n) }

// RecordFetch records on the default manager.
func RecordFetch(source string, took time.Duration, err error) {
	globalManager.RecordFetch(source, took, err)
}

// RecordHTTPRequest records on the default manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records on the default manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.UpdateSystemGoroutineCount(n) }

// RecordSystemGCPauseTime sets the average GC pause gauge.
func RecordSystemGCPauseTime(ms float64) { globalManager.RecordSystemGCPauseTime(ms) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
