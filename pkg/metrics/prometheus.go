// Package metrics provides Prometheus metrics for the psych sheet generator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeStatus    = "bad_status"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
	OutcomeCanceled  = "canceled"
)

// Manager owns every collector of the process.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Provider lookups
	fetchAttempts  *prometheus.CounterVec
	fetchRetries   prometheus.Counter
	fetchExhausted prometheus.Counter
	fetchLatency   prometheus.Histogram

	// Batch ranking
	batchDuration     prometheus.Histogram
	batchRequested    prometheus.Gauge
	rankedCompetitors prometheus.Gauge
	failedCompetitors prometheus.Counter
	batchFailures     prometheus.Counter

	// Roster and persistence
	trackedIdentifiers prometheus.Gauge
	rosterMutations    *prometheus.CounterVec
	storeOperations    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "psych",
		subsystem:        "sheet",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
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

	m.fetchAttempts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_attempts_total",
		Help:        "Provider lookup attempts by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.fetchRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_retries_total",
		Help:        "Lookups retried after a failed attempt",
		ConstLabels: m.constLabels,
	})

	m.fetchExhausted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_exhausted_total",
		Help:        "Lookups that failed on every allowed attempt",
		ConstLabels: m.constLabels,
	})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_attempt_latency_milliseconds",
		Help:        "Latency of a single provider lookup attempt",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_duration_milliseconds",
		Help:        "Wall time of a full fetch-and-rank batch",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.batchRequested = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_requested_competitors",
		Help:        "Competitors requested by the most recent batch",
		ConstLabels: m.constLabels,
	})

	m.rankedCompetitors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_ranked_competitors",
		Help:        "Competitors ranked by the most recent batch",
		ConstLabels: m.constLabels,
	})

	m.failedCompetitors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_excluded_competitors_total",
		Help:        "Competitors excluded from a sheet because their lookup failed",
		ConstLabels: m.constLabels,
	})

	m.batchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_failures_total",
		Help:        "Batches that ended in a terminal error",
		ConstLabels: m.constLabels,
	})

	m.trackedIdentifiers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tracked_identifiers",
		Help:        "Identifiers currently tracked",
		ConstLabels: m.constLabels,
	})

	m.rosterMutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_mutations_total",
		Help:        "Roster mutations by operation",
		ConstLabels: m.constLabels,
	}, []string{"op"})

	m.storeOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_operations_total",
		Help:        "Identifier store operations by kind and status",
		ConstLabels: m.constLabels,
	}, []string{"op", "status"})
}

// RecordFetchAttempt counts one lookup attempt and its latency.
func (m *Manager) RecordFetchAttempt(outcome string, latencyMs float64) {
	m.fetchAttempts.WithLabelValues(outcome).Inc()
	m.fetchLatency.Observe(latencyMs)
}

// RecordFetchRetry counts a retry.
func (m *Manager) RecordFetchRetry() { m.fetchRetries.Inc() }

// RecordFetchExhausted counts a lookup that ran out of attempts.
func (m *Manager) RecordFetchExhausted() { m.fetchExhausted.Inc() }

// RecordBatch records the outcome of a completed batch.
func (m *Manager) RecordBatch(requested, ranked, failed int, durationMs float64) {
	m.batchRequested.Set(float64(requested))
	m.rankedCompetitors.Set(float64(ranked))
	m.failedCompetitors.Add(float64(failed))
	m.batchDuration.Observe(durationMs)
}

// RecordBatchFailure counts a terminal batch error.
func (m *Manager) RecordBatchFailure() { m.batchFailures.Inc() }

// UpdateTrackedIdentifiers sets the roster size.
func (m *Manager) UpdateTrackedIdentifiers(n int) { m.trackedIdentifiers.Set(float64(n)) }

// RecordRosterMutation counts an add, bulk, remove or clear.
func (m *Manager) RecordRosterMutation(op string) { m.rosterMutations.WithLabelValues(op).Inc() }

// RecordStoreOperation counts a load/save/delete against the store.
func (m *Manager) RecordStoreOperation(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.storeOperations.WithLabelValues(op, status).Inc()
}

// RecordFetchAttempt counts one lookup attempt on the global manager.
func RecordFetchAttempt(outcome string, latencyMs float64) {
	globalManager.RecordFetchAttempt(outcome, latencyMs)
}

// RecordFetchRetry counts a retry on the global manager.
func RecordFetchRetry() { globalManager.RecordFetchRetry() }

// RecordFetchExhausted counts an exhausted lookup on the global manager.
func RecordFetchExhausted() { globalManager.RecordFetchExhausted() }

// RecordBatch records a completed batch on the global manager.
func RecordBatch(requested, ranked, failed int, durationMs float64) {
	globalManager.RecordBatch(requested, ranked, failed, durationMs)
}

// RecordBatchFailure counts a terminal batch error on the global manager.
func RecordBatchFailure() { globalManager.RecordBatchFailure() }

// UpdateTrackedIdentifiers sets the roster size on the global manager.
func UpdateTrackedIdentifiers(n int) { globalManager.UpdateTrackedIdentifiers(n) }

// RecordRosterMutation counts a roster mutation on the global manager.
func RecordRosterMutation(op string) { globalManager.RecordRosterMutation(op) }

// RecordStoreOperation counts a store operation on the global manager.
func RecordStoreOperation(op string, err error) { globalManager.RecordStoreOperation(op, err) }

// GetRegistry returns the registry holding the global collectors.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
