package metrics

import "github.com/prometheus/client_golang/prometheus"

// BridgeMetrics exposes counters/histograms for the webhook relay flow.
type BridgeMetrics struct {
	inboundTotal     *prometheus.CounterVec
	dispatchedTotal  *prometheus.CounterVec
	sendFailures     *prometheus.CounterVec
	interactLatency  *prometheus.HistogramVec
	interactFallback *prometheus.CounterVec
}

func NewBridgeMetrics(reg prometheus.Registerer) *BridgeMetrics {
	m := &BridgeMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bridge",
			Subsystem: "webhook",
			Name:      "inbound_total",
			Help:      "Total inbound webhook requests",
		}, []string{"channel", "status"}),
		dispatchedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bridge",
			Subsystem: "dispatch",
			Name:      "messages_total",
			Help:      "Total normalized messages dispatched to the conversation runtime",
		}, []string{"channel"}),
		sendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bridge",
			Subsystem: "dispatch",
			Name:      "send_failures_total",
			Help:      "Total outbound reply deliveries that failed",
		}, []string{"channel"}),
		interactLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bridge",
			Subsystem: "conversation",
			Name:      "interact_latency_seconds",
			Help:      "Latency of conversation runtime calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		interactFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bridge",
			Subsystem: "conversation",
			Name:      "fallback_total",
			Help:      "Total runtime calls degraded to a fallback reply",
		}, []string{"reason"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.dispatchedTotal, m.sendFailures, m.interactLatency, m.interactFallback)
	return m
}

func (m *BridgeMetrics) ObserveInbound(channel, status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(channel, status).Inc()
}

func (m *BridgeMetrics) ObserveDispatched(channel string) {
	if m == nil {
		return
	}
	m.dispatchedTotal.WithLabelValues(channel).Inc()
}

func (m *BridgeMetrics) ObserveSendFailure(channel string) {
	if m == nil {
		return
	}
	m.sendFailures.WithLabelValues(channel).Inc()
}

func (m *BridgeMetrics) ObserveInteractLatency(status string, seconds float64) {
	if m == nil {
		return
	}
	m.interactLatency.WithLabelValues(status).Observe(seconds)
}

func (m *BridgeMetrics) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.interactFallback.WithLabelValues(reason).Inc()
}
