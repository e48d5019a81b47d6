// Package observability содержит метрики Prometheus для ингестии и прогнозов.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fire_monitoring"

// Metrics - счётчики и гистограммы сервиса
type Metrics struct {
	IngestCycles   *prometheus.CounterVec // labels: state={done,failed}
	IngestRecords  *prometheus.CounterVec // labels: result={inserted,updated,duplicate,dropped}
	IngestDuration prometheus.Histogram

	// Внешний фид
	FeedRequests *prometheus.CounterVec   // labels: source, outcome={success,error}
	FeedRetries  *prometheus.CounterVec   // labels: source
	FeedDuration *prometheus.HistogramVec // labels: source

	// Прогнозы
	PredictionDuration prometheus.Histogram
	PredictionCache    *prometheus.CounterVec // labels: result={hit,miss}

	AlertsPublished prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		IngestCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_cycles_total",
			Help:      "Ingestion cycles by terminal state.",
		}, []string{"state"}),
		IngestRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_records_total",
			Help:      "Detections processed by ingestion, by reconciliation result.",
		}, []string{"result"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete ingestion cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Satellite feed requests by source and outcome.",
		}, []string{"source", "outcome"}),
		FeedRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_retries_total",
			Help:      "Retried satellite feed requests by source.",
		}, []string{"source"}),
		FeedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_request_duration_seconds",
			Help:      "Satellite feed request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a risk prediction computation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		PredictionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_cache_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_published_total",
			Help:      "Fire alert events pushed to the delivery queue.",
		}),
	}
}

// NewMetrics создаёт метрики и регистрирует их в стандартном реестре Prometheus
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.IngestCycles,
		m.IngestRecords,
		m.IngestDuration,
		m.FeedRequests,
		m.FeedRetries,
		m.FeedDuration,
		m.PredictionDuration,
		m.PredictionCache,
		m.AlertsPublished,
	)
	return m
}

// NewMetricsForTesting создаёт незарегистрированные метрики, чтобы повторные
// вызовы в тестах не паниковали
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
