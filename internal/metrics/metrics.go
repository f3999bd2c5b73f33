package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Standard Prometheus collectors for the honeypot engine
var (
	// honeypot_requests_total (counter): total messages processed
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "honeypot_requests_total",
		Help: "Total number of scammer messages received by the engine",
	})

	// honeypot_decision_count{band=BENIGN|LOW|MEDIUM|HIGH|CRITICAL}
	DecisionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "honeypot_decision_count",
		Help: "Number of policy decisions by risk band",
	}, []string{"band"})

	// honeypot_scam_detected_total (counter)
	ScamDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "honeypot_scam_detected_total",
		Help: "Number of messages classified as scams",
	})

	// honeypot_reply_strategy{strategy=scripted|llm|fallback|suppressed}
	ReplyStrategy = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "honeypot_reply_strategy",
		Help: "Which branch produced the agent reply",
	}, []string{"strategy"})

	// honeypot_escalations_total (counter)
	Escalations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "honeypot_escalations_total",
		Help: "Number of conversations flagged as escalating",
	})

	// honeypot_gate_verdict{verdict=PERMIT|DENY}
	GateVerdict = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "honeypot_gate_verdict",
		Help: "Engagement gate verdicts",
	}, []string{"verdict"})

	// honeypot_latency_seconds (histogram): request duration
	LatencyHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "honeypot_latency_seconds",
		Help:    "Message processing latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordDecision increments the per-band decision counter
func RecordDecision(band string) {
	DecisionCount.WithLabelValues(band).Inc()
}

// RecordReplyStrategy increments the reply-strategy counter
func RecordReplyStrategy(strategy string) {
	ReplyStrategy.WithLabelValues(strategy).Inc()
}

// RecordGateVerdict increments the gate-verdict counter
func RecordGateVerdict(verdict string) {
	GateVerdict.WithLabelValues(verdict).Inc()
}
