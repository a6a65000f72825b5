package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestAssistantMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAssistantMetrics(reg)
	m.ObserveTurn("greeting", "template")
	m.ObserveLLMOutcome("ok")
	m.ObserveComposeLatency("generative", 0.5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 3 {
		t.Fatalf("expected 3 metric families, got %d", len(families))
	}
}

func TestAssistantMetricsNilSafe(t *testing.T) {
	var m *AssistantMetrics
	m.ObserveTurn("greeting", "template")
	m.ObserveLLMOutcome("error")
	m.ObserveComposeLatency("template", 0.1)
}
