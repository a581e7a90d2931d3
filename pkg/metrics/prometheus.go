// Package metrics provides Prometheus metrics for the raidsight analytics
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	eventsNormalized prometheus.Counter
	fightsIngested   prometheus.Counter
	reportsIngested  prometheus.Counter
	reportsFailed    prometheus.Counter
	ingestLatency    prometheus.Histogram

	// Remote fetch
	pagesFetched   prometheus.Counter
	remoteRetries  prometheus.Counter
	rateLimitWaits prometheus.Counter
	fetchLatency   prometheus.Histogram

	// Benchmark pipeline
	benchmarkComputes prometheus.Counter
	computeLatency    prometheus.Histogram
	corpusReports     prometheus.Gauge

	// Scoring
	rotationsScored prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "raidsight",
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
	factory := promauto.With(m.registry)

	m.eventsNormalized = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "events_normalized_total",
		Help: "Raw events successfully normalized into combat events.",
	})
	m.fightsIngested = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "fights_ingested_total",
		Help: "Fights fully ingested (all metric computers run and persisted).",
	})
	m.reportsIngested = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "reports_ingested_total",
		Help: "Reports added to the benchmark corpus.",
	})
	m.reportsFailed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "reports_failed_total",
		Help: "Reports whose ingestion failed after retries.",
	})
	m.ingestLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Name: "ingest_latency_ms",
		Help:    "Per-report ingestion latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.pagesFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "pages_fetched_total",
		Help: "Raw event pages fetched from the remote API.",
	})
	m.remoteRetries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "remote_retries_total",
		Help: "Transient remote failures retried with backoff.",
	})
	m.rateLimitWaits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "rate_limit_waits_total",
		Help: "Times an outbound call waited on the shared rate limiter.",
	})
	m.fetchLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Name: "fetch_latency_ms",
		Help:    "Remote request latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.benchmarkComputes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "benchmark_computes_total",
		Help: "Benchmark documents recomputed and upserted.",
	})
	m.computeLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Name: "compute_latency_ms",
		Help:    "Per-encounter benchmark compute latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.corpusReports = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Name: "corpus_reports",
		Help: "Reports currently in the benchmark corpus.",
	})
	m.rotationsScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: "rotations_scored_total",
		Help: "Rotation scoring runs completed.",
	})
}

// Registry returns the registry backing the global manager, for exposing a
// /metrics endpoint or scraping in tests.
func Registry() *prometheus.Registry { return customRegistry }

// Package-level recording helpers against the global manager.

func RecordEventsNormalized(n int)    { globalManager.eventsNormalized.Add(float64(n)) }
func RecordFightIngested()            { globalManager.fightsIngested.Inc() }
func RecordReportIngested()           { globalManager.reportsIngested.Inc() }
func RecordReportFailed()             { globalManager.reportsFailed.Inc() }
func RecordIngestLatency(ms float64)  { globalManager.ingestLatency.Observe(ms) }
func RecordPageFetched()              { globalManager.pagesFetched.Inc() }
func RecordRemoteRetry()              { globalManager.remoteRetries.Inc() }
func RecordRateLimitWait()            { globalManager.rateLimitWaits.Inc() }
func RecordFetchLatency(ms float64)   { globalManager.fetchLatency.Observe(ms) }
func RecordBenchmarkCompute()         { globalManager.benchmarkComputes.Inc() }
func RecordComputeLatency(ms float64) { globalManager.computeLatency.Observe(ms) }
func UpdateCorpusReports(n int)       { globalManager.corpusReports.Set(float64(n)) }
func RecordRotationScored()           { globalManager.rotationsScored.Inc() }
