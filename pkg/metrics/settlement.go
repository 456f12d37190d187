package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SettlementMetrics records counters for the credit settlement engine.
type SettlementMetrics struct {
	duration *prometheus.HistogramVec
	settled  prometheus.Counter
	failed   *prometheus.CounterVec
	credits  *prometheus.CounterVec
}

// NewSettlementMetrics registers the settlement metrics on the provided registerer.
func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	if reg == nil {
		return &SettlementMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_duration_seconds",
		Help:    "Duration of settlement attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	settled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlements_total",
		Help: "Successfully settled residue offers.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_failures_total",
		Help: "Failed settlement attempts by error code.",
	}, []string{"code"})
	credits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "credits_awarded_total",
		Help: "Credits awarded on settlement by participant role.",
	}, []string{"role"})
	reg.MustRegister(duration, settled, failed, credits)
	return &SettlementMetrics{
		duration: duration,
		settled:  settled,
		failed:   failed,
		credits:  credits,
	}
}

// ObserveDuration records the duration of an attempt with its outcome label.
func (m *SettlementMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSettled counts one successful settlement.
func (m *SettlementMetrics) IncSettled() {
	if m == nil || m.settled == nil {
		return
	}
	m.settled.Inc()
}

// IncFailure counts one failed attempt under the given error code.
func (m *SettlementMetrics) IncFailure(code string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(code)).Inc()
}

// AddCredits accumulates awarded credits for the named role.
func (m *SettlementMetrics) AddCredits(role string, credits int64) {
	if m == nil || m.credits == nil {
		return
	}
	m.credits.WithLabelValues(normalizeLabel(role)).Add(float64(credits))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
