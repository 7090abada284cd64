package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks routing outcomes per strategy.
type Metrics struct {
	AnswersTotal    *prometheus.CounterVec
	StrategyLatency *prometheus.HistogramVec
	BackendFailures *prometheus.CounterVec
	SessionsActive  prometheus.Gauge
	ChunksLoaded    prometheus.Gauge
	SkippedRecords  prometheus.Counter
}

// NewMetrics registers and returns the engine metrics on the given registerer.
// Passing nil uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AnswersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "answer_engine",
			Name:      "answers_total",
			Help:      "Answers produced, labeled by resolving strategy and answer type.",
		}, []string{"source", "type"}),
		StrategyLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "answer_engine",
			Name:      "strategy_duration_seconds",
			Help:      "Per-strategy latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
		BackendFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "answer_engine",
			Name:      "backend_failures_total",
			Help:      "Generative/embedding backend call failures.",
		}, []string{"backend"}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "answer_engine",
			Name:      "sessions_active",
			Help:      "Conversation sessions currently held.",
		}),
		ChunksLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "answer_engine",
			Name:      "knowledge_chunks_loaded",
			Help:      "Knowledge chunks loaded at startup.",
		}),
		SkippedRecords: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "answer_engine",
			Name:      "knowledge_records_skipped_total",
			Help:      "Malformed knowledge records skipped during load.",
		}),
	}
}

// NopMetrics returns metrics bound to a throwaway registry. Used in tests.
func NopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
