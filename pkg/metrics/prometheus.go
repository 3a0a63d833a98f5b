// Package metrics provides Prometheus metrics for the pinboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// View ingestion
	viewsProcessed  prometheus.Counter
	viewsDuplicate  prometheus.Counter
	viewRecordError prometheus.Counter

	// Recommendation pipeline
	recommendationRequests prometheus.Counter
	recommendationEmpty    prometheus.Counter
	recommendationErrors   prometheus.Counter
	recommendationLatency  prometheus.Histogram
	profileBuildLatency    prometheus.Histogram
	candidatePoolSize      prometheus.Gauge

	// Notifications feed
	notificationsServed prometheus.Counter

	// Queue health
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueues     prometheus.Counter
	queueDequeues     prometheus.Counter
	queueEnqueueError prometheus.Counter

	// Worker pool
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Content store
	storeQueryLatency prometheus.Histogram
	storeErrors       prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry so /healthz serves only service metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pinboard",
		subsystem:        "recommend",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.viewsProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "views_processed_total",
		Help: "Number of view events accepted for recording.",
	})
	m.viewsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "views_duplicate_total",
		Help: "Number of view events rejected as duplicates.",
	})
	m.viewRecordError = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "view_record_errors_total",
		Help: "Number of failures persisting view events.",
	})

	m.recommendationRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "requests_total",
		Help: "Number of recommendation computations started.",
	})
	m.recommendationEmpty = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "empty_results_total",
		Help: "Number of recommendation computations that produced no pins.",
	})
	m.recommendationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "degraded_total",
		Help: "Number of recommendation computations degraded by store failures.",
	})
	m.recommendationLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "latency_ms",
		Help:    "Recommendation computation latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.profileBuildLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "profile_build_latency_ms",
		Help:    "Interest profile build latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.candidatePoolSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "candidate_pool_size",
		Help: "Size of the last fetched candidate pool.",
	})

	m.notificationsServed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "notifications",
		Name: "served_total",
		Help: "Number of notification entries returned to clients.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "queue",
		Name: "size",
		Help: "Current number of queued view events.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "queue",
		Name: "capacity",
		Help: "Configured view queue capacity.",
	})
	m.queueUtilization = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "queue",
		Name: "utilization",
		Help: "Queue fill ratio between 0 and 1.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "queue",
		Name: "enqueues_total",
		Help: "Number of successful enqueues.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "queue",
		Name: "dequeues_total",
		Help: "Number of successful dequeues.",
	})
	m.queueEnqueueError = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "queue",
		Name: "enqueue_errors_total",
		Help: "Number of rejected enqueues (closed, full, or cancelled).",
	})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "worker",
		Name: "count",
		Help: "Number of running view recorder workers.",
	})
	m.workerProcessingLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "worker",
		Name:    "processing_latency_ms",
		Help:    "View event processing latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "worker",
		Name: "errors_total",
		Help: "Number of view events that failed processing.",
	})

	m.storeQueryLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "store",
		Name:    "query_latency_ms",
		Help:    "Content store query latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "store",
		Name: "errors_total",
		Help: "Number of content store failures.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name:    "request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers delegating to the global manager.

func RecordViewProcessed() {
	if globalManager.enabled {
		globalManager.viewsProcessed.Inc()
	}
}

func RecordViewDuplicate() {
	if globalManager.enabled {
		globalManager.viewsDuplicate.Inc()
	}
}

func RecordViewRecordError() {
	if globalManager.enabled {
		globalManager.viewRecordError.Inc()
	}
}

func RecordRecommendationRequest() {
	if globalManager.enabled {
		globalManager.recommendationRequests.Inc()
	}
}

func RecordRecommendationEmpty() {
	if globalManager.enabled {
		globalManager.recommendationEmpty.Inc()
	}
}

func RecordRecommendationError() {
	if globalManager.enabled {
		globalManager.recommendationErrors.Inc()
	}
}

func RecordRecommendationLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.recommendationLatency.Observe(latencyMs)
	}
}

func RecordProfileBuildLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.profileBuildLatency.Observe(latencyMs)
	}
}

func UpdateCandidatePoolSize(size int) {
	if globalManager.enabled {
		globalManager.candidatePoolSize.Set(float64(size))
	}
}

func RecordNotificationsServed(count int) {
	if globalManager.enabled {
		globalManager.notificationsServed.Add(float64(count))
	}
}

func UpdateQueueSize(size int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(size))
	}
}

func UpdateQueueCapacity(capacity int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(capacity))
	}
}

func UpdateQueueUtilization(utilization float64) {
	if globalManager.enabled {
		globalManager.queueUtilization.Set(utilization)
	}
}

func RecordQueueEnqueue() {
	if globalManager.enabled {
		globalManager.queueEnqueues.Inc()
	}
}

func RecordQueueDequeue() {
	if globalManager.enabled {
		globalManager.queueDequeues.Inc()
	}
}

func RecordQueueEnqueueError() {
	if globalManager.enabled {
		globalManager.queueEnqueueError.Inc()
	}
}

func UpdateWorkerCount(count int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(count))
	}
}

func RecordWorkerProcessingLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.workerProcessingLatency.Observe(latencyMs)
	}
}

func RecordWorkerError() {
	if globalManager.enabled {
		globalManager.workerErrors.Inc()
	}
}

func RecordStoreQueryLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.storeQueryLatency.Observe(latencyMs)
	}
}

func RecordStoreError() {
	if globalManager.enabled {
		globalManager.storeErrors.Inc()
	}
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// GetRegistry exposes the custom registry for the metrics HTTP handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
