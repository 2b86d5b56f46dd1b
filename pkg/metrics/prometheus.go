// Package metrics provides Prometheus metrics for the portfolio service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Analysis engine
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	rowsParsed       prometheus.Counter
	usersCompared    prometheus.Gauge
	historySize      prometheus.Gauge

	// Upload boundary
	uploadsTotal    prometheus.Counter
	uploadBytes     prometheus.Counter
	uploadsRejected prometheus.Counter

	// Contact relay
	mailSent       prometheus.Counter
	mailErrors     prometheus.Counter
	mailDuplicates prometheus.Counter

	// QR generator
	qrGenerated prometheus.Counter

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System health
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

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "unzippd",
		subsystem:        "portfolio",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_total",
		Help:      "Analysis runs by metric and outcome",
	}, []string{"metric", "outcome"})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_milliseconds",
		Help:      "Histogram of end-to-end analysis duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rowsParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_parsed_total",
		Help:      "Total data rows parsed across analyses",
	})

	m.usersCompared = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "users_compared",
		Help:      "Distinct users in the most recent analysis",
	})

	m.historySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_size",
		Help:      "Analysis runs currently held in history",
	})

	m.uploadsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "uploads_total",
		Help:      "Accepted file uploads",
	})

	m.uploadBytes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_bytes_total",
		Help:      "Total bytes accepted through uploads",
	})

	m.uploadsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "uploads_rejected_total",
		Help:      "Uploads rejected before analysis (size, shape)",
	})

	m.mailSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mail_sent_total",
		Help:      "Contact messages relayed successfully",
	})

	m.mailErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mail_errors_total",
		Help:      "Contact relay failures",
	})

	m.mailDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mail_duplicates_total",
		Help:      "Contact submissions rejected as double-posts",
	})

	m.qrGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "qr_generated_total",
		Help:      "QR codes generated",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current goroutine count",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Analysis metrics.

// RecordAnalysis counts one analysis run for metric with the given outcome
// ("ok", "bad_format", "parse_error", ...).
func RecordAnalysis(metric, outcome string) {
	globalManager.analysesTotal.WithLabelValues(metric, outcome).Inc()
}

// RecordAnalysisDuration records one end-to-end analysis duration.
func RecordAnalysisDuration(ms float64) {
	globalManager.analysisDuration.Observe(ms)
}

// AddRowsParsed adds the rows consumed by one analysis.
func AddRowsParsed(n int) {
	globalManager.rowsParsed.Add(float64(n))
}

// UpdateUsersCompared sets the user count of the most recent analysis.
func UpdateUsersCompared(n int) {
	globalManager.usersCompared.Set(float64(n))
}

// UpdateHistorySize sets the current number of runs held in history.
func UpdateHistorySize(n int) {
	globalManager.historySize.Set(float64(n))
}

// Upload metrics.

// RecordUpload counts one accepted upload of the given size.
func RecordUpload(bytes int64) {
	globalManager.uploadsTotal.Inc()
	globalManager.uploadBytes.Add(float64(bytes))
}

// RecordUploadRejected counts one rejected upload.
func RecordUploadRejected() {
	globalManager.uploadsRejected.Inc()
}

// Mail metrics.

// RecordMailSent counts one relayed contact message.
func RecordMailSent() { globalManager.mailSent.Inc() }

// RecordMailError counts one relay failure.
func RecordMailError() { globalManager.mailErrors.Inc() }

// RecordMailDuplicate counts one rejected double-post.
func RecordMailDuplicate() { globalManager.mailDuplicates.Inc() }

// QR metrics.

// RecordQRGenerated counts one generated code.
func RecordQRGenerated() { globalManager.qrGenerated.Inc() }

// HTTP metrics.

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// System metrics.

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records average GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
