// Package metrics exposes Prometheus instrumentation for the assistant.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// AssistantMetrics exposes counters/histograms for the chat turn pipeline.
type AssistantMetrics struct {
	turnsTotal       *prometheus.CounterVec
	llmFallbackTotal *prometheus.CounterVec
	composeLatency   *prometheus.HistogramVec
}

func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	m := &AssistantMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "assistant",
			Name:      "turns_total",
			Help:      "Total chat turns by intent and response path",
		}, []string{"intent", "path"}),
		llmFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "assistant",
			Name:      "llm_fallback_total",
			Help:      "Generative calls by outcome (ok, error, unconfigured)",
		}, []string{"outcome"}),
		composeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "assistant",
			Name:      "compose_latency_seconds",
			Help:      "Latency of reply composition",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.llmFallbackTotal, m.composeLatency)
	return m
}

func (m *AssistantMetrics) ObserveTurn(intent, path string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(intent, path).Inc()
}

func (m *AssistantMetrics) ObserveLLMOutcome(outcome string) {
	if m == nil {
		return
	}
	m.llmFallbackTotal.WithLabelValues(outcome).Inc()
}

func (m *AssistantMetrics) ObserveComposeLatency(path string, seconds float64) {
	if m == nil {
		return
	}
	m.composeLatency.WithLabelValues(path).Observe(seconds)
}
