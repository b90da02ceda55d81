// Package metrics provides Prometheus metrics for the tabellone standings service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Scoring and standings
	matchesRecorded   *prometheus.CounterVec
	matchesDuplicate  prometheus.Counter
	matchesRejected   *prometheus.CounterVec
	pointsAwarded     *prometheus.CounterVec
	invalidSports     prometheus.Counter
	scoringLatency    prometheus.Histogram
	tournamentsTotal  prometheus.Gauge
	teamsTotal        prometheus.Gauge
	storeUpdateTiming prometheus.Histogram
	storeQueryTiming  prometheus.Histogram

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Workers
	workerCount   prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// Archive
	archiveAppends  prometheus.Counter
	archiveReplayed prometheus.Counter
	archiveErrors   prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

// global holds the process-wide manager and the registry its collectors live
// in. The registry carries no default Go collectors.
type global struct {
	manager  *Manager
	registry *prometheus.Registry
}

var current atomic.Pointer[global] //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry. Call it at start-up, before handlers capture GetRegistry.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithPrometheusRegistry(registry))
	current.Store(&global{manager: NewManager(all...), registry: registry})
}

// active returns the global manager when collection is enabled.
func active() *Manager {
	g := current.Load()
	if g == nil || !g.manager.enabled {
		return nil
	}
	return g.manager
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tabellone",
		subsystem:        "standings",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	counter := func(name, help string) prometheus.Counter {
		return auto.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
	}
	histogram := func(name, help string) prometheus.Histogram {
		return auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
			Buckets: m.histogramBuckets,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		}, labels)
	}

	m.matchesRecorded = counterVec("matches_recorded_total", "Matches applied to a standings table", "sport")
	m.matchesDuplicate = counter("matches_duplicate_total", "Match submissions rejected as duplicates")
	m.matchesRejected = counterVec("matches_rejected_total", "Matches the pipeline could not apply", "reason")
	m.pointsAwarded = counterVec("points_awarded_total", "Standings points awarded", "sport", "result")
	m.invalidSports = counter("invalid_sport_total", "Requests naming an unsupported sport")
	m.scoringLatency = histogram("scoring_latency_milliseconds", "Time spent computing match points")
	m.tournamentsTotal = gauge("tournaments", "Tournaments with at least one recorded match")
	m.teamsTotal = gauge("teams", "Teams across all standings tables")
	m.storeUpdateTiming = histogram("store_update_latency_milliseconds", "Standings store write latency")
	m.storeQueryTiming = histogram("store_query_latency_milliseconds", "Standings store read latency")

	m.queueSize = gauge("queue_size", "Matches waiting in the queue")
	m.queueCapacity = gauge("queue_capacity", "Configured queue capacity")
	m.queueEnqueued = counter("queue_enqueued_total", "Matches enqueued")
	m.queueDequeued = counter("queue_dequeued_total", "Matches dequeued")
	m.queueEnqueueErrors = counterVec("queue_enqueue_errors_total", "Rejected enqueue attempts", "reason")

	m.workerCount = gauge("worker_count", "Running workers")
	m.workerLatency = histogram("worker_processing_latency_milliseconds", "End to end time to apply one match")
	m.workerErrors = counter("worker_errors_total", "Matches that failed inside a worker")

	m.archiveAppends = counter("archive_appends_total", "Matches written to the archive")
	m.archiveReplayed = counter("archive_replayed_total", "Matches replayed from the archive at start-up")
	m.archiveErrors = counter("archive_errors_total", "Archive read or write failures")

	m.httpRequests = counterVec("http_requests_total", "HTTP requests by endpoint, method and status",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = counterVec("errors_total", "Errors by component and type", "component", "error_type")
}

// RecordMatchRecorded counts one match applied to a table.
func RecordMatchRecorded(sport string) {
	if m := active(); m != nil {
		m.matchesRecorded.WithLabelValues(sport).Inc()
	}
}

// RecordMatchDuplicate counts a duplicate submission.
func RecordMatchDuplicate() {
	if m := active(); m != nil {
		m.matchesDuplicate.Inc()
	}
}

// RecordMatchRejected counts a match the pipeline dropped.
func RecordMatchRejected(reason string) {
	if m := active(); m != nil {
		m.matchesRejected.WithLabelValues(reason).Inc()
	}
}

// RecordPointsAwarded adds points to the per sport and result counter.
func RecordPointsAwarded(sport, result string, points int) {
	if m := active(); m != nil && points > 0 {
		m.pointsAwarded.WithLabelValues(sport, result).Add(float64(points))
	}
}

// RecordInvalidSport counts a request with an unsupported sport.
func RecordInvalidSport() {
	if m := active(); m != nil {
		m.invalidSports.Inc()
	}
}

// RecordScoringLatency observes scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.scoringLatency.Observe(latencyMs)
	}
}

// UpdateTournaments sets the tournament gauge.
func UpdateTournaments(count int) {
	if m := active(); m != nil {
		m.tournamentsTotal.Set(float64(count))
	}
}

// UpdateTeams sets the team gauge.
func UpdateTeams(count int) {
	if m := active(); m != nil {
		m.teamsTotal.Set(float64(count))
	}
}

// RecordStoreUpdateLatency observes a store write.
func RecordStoreUpdateLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.storeUpdateTiming.Observe(latencyMs)
	}
}

// RecordStoreQueryLatency observes a store read.
func RecordStoreQueryLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.storeQueryTiming.Observe(latencyMs)
	}
}

// UpdateQueueSize sets the current queue length.
func UpdateQueueSize(size int) {
	if m := active(); m != nil {
		m.queueSize.Set(float64(size))
	}
}

// UpdateQueueCapacity sets the configured queue capacity.
func UpdateQueueCapacity(capacity int) {
	if m := active(); m != nil {
		m.queueCapacity.Set(float64(capacity))
	}
}

// RecordQueueEnqueue counts an accepted enqueue.
func RecordQueueEnqueue() {
	if m := active(); m != nil {
		m.queueEnqueued.Inc()
	}
}

// RecordQueueDequeue counts a dequeue.
func RecordQueueDequeue() {
	if m := active(); m != nil {
		m.queueDequeued.Inc()
	}
}

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	if m := active(); m != nil {
		m.queueEnqueueErrors.WithLabelValues(reason).Inc()
	}
}

// UpdateWorkerCount sets the worker gauge.
func UpdateWorkerCount(count int) {
	if m := active(); m != nil {
		m.workerCount.Set(float64(count))
	}
}

// RecordWorkerProcessingLatency observes how long a worker spent on one match.
func RecordWorkerProcessingLatency(latencyMs float64) {
	if m := active(); m != nil {
		m.workerLatency.Observe(latencyMs)
	}
}

// RecordWorkerError counts a failed match inside a worker.
func RecordWorkerError() {
	if m := active(); m != nil {
		m.workerErrors.Inc()
	}
}

// RecordArchiveAppend counts an archived match.
func RecordArchiveAppend() {
	if m := active(); m != nil {
		m.archiveAppends.Inc()
	}
}

// RecordArchiveReplayed counts a replayed match.
func RecordArchiveReplayed() {
	if m := active(); m != nil {
		m.archiveReplayed.Inc()
	}
}

// RecordArchiveError counts an archive failure.
func RecordArchiveError() {
	if m := active(); m != nil {
		m.archiveErrors.Inc()
	}
}

// RecordHTTPRequest counts a request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if m := active(); m != nil {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes a request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m := active(); m != nil {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByComponent counts an error for a component.
func RecordErrorByComponent(component, errorType string) {
	if m := active(); m != nil {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// GetRegistry returns the registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}
