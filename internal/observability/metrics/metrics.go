package metrics

import "github.com/prometheus/client_golang/prometheus"

// TurnMetrics exposes counters/histograms for conversation turns.
type TurnMetrics struct {
	turnsTotal   *prometheus.CounterVec
	turnDuration *prometheus.HistogramVec
}

func NewTurnMetrics(reg prometheus.Registerer) *TurnMetrics {
	m := &TurnMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pawspoint",
			Subsystem: "assistant",
			Name:      "turns_total",
			Help:      "Total dialogue turns by action and outcome",
		}, []string{"action", "outcome"}),
		turnDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pawspoint",
			Subsystem: "assistant",
			Name:      "turn_duration_seconds",
			Help:      "Latency of turn resolution including store lookups",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.turnDuration)
	return m
}

func (m *TurnMetrics) ObserveTurn(action, outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *TurnMetrics) ObserveTurnDuration(action string, seconds float64) {
	if m == nil {
		return
	}
	m.turnDuration.WithLabelValues(action).Observe(seconds)
}
