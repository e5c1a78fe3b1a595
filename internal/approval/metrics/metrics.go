package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the approval engine.
type Metrics struct {
	// Committed transitions by action and resulting stage
	Decisions *prometheus.CounterVec

	// Decisions rejected before commit, by error code
	Rejections *prometheus.CounterVec

	// Compare-and-set losses on the stage field
	StageConflicts prometheus.Counter

	// End-to-end Decide latency
	DecideLatency prometheus.Histogram
}

// New creates a new Metrics instance with all approval engine metrics registered.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grantflow_approval_decisions_total",
			Help: "Committed stage transitions by action and resulting stage",
		}, []string{"action", "to_stage"}),

		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grantflow_approval_rejections_total",
			Help: "Decisions rejected before commit by error code",
		}, []string{"code"}),

		StageConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grantflow_approval_stage_conflicts_total",
			Help: "Compare-and-set conflicts on the project stage field",
		}),

		DecideLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "grantflow_approval_decide_duration_seconds",
			Help:    "Duration of full decision handling including remark appends",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncDecision records a committed transition.
func (m *Metrics) IncDecision(action, toStage string) {
	if m != nil {
		m.Decisions.WithLabelValues(action, toStage).Inc()
	}
}

// IncRejection records a decision rejected before commit.
func (m *Metrics) IncRejection(code string) {
	if m != nil {
		m.Rejections.WithLabelValues(code).Inc()
	}
}

// IncStageConflict records a lost compare-and-set race.
func (m *Metrics) IncStageConflict() {
	if m != nil {
		m.StageConflicts.Inc()
	}
}

// ObserveDecideLatency records the duration of a Decide call.
func (m *Metrics) ObserveDecideLatency(d time.Duration) {
	if m != nil {
		m.DecideLatency.Observe(d.Seconds())
	}
}
