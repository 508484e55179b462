package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestObserveRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBridgeMetrics(reg)

	m.ObserveInbound("whatsapp", "ok")
	m.ObserveInbound("whatsapp", "ok")
	m.ObserveDispatched("whatsapp")
	m.ObserveSendFailure("messenger")
	m.ObserveInteractLatency("ok", 0.25)
	m.ObserveFallback("unavailable")

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, name := range []string{
		"bridge_webhook_inbound_total",
		"bridge_dispatch_messages_total",
		"bridge_dispatch_send_failures_total",
		"bridge_conversation_interact_latency_seconds",
		"bridge_conversation_fallback_total",
	} {
		if !found[name] {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *BridgeMetrics
	m.ObserveInbound("whatsapp", "ok")
	m.ObserveDispatched("whatsapp")
	m.ObserveSendFailure("whatsapp")
	m.ObserveInteractLatency("ok", 1)
	m.ObserveFallback("empty")
}
