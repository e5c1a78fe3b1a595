package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the checklist gate.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	LinksWritten  prometheus.Counter
	LinksRejected prometheus.Counter
	Conflicts     prometheus.Counter
}

// New creates a new Metrics instance with all checklist metrics registered.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grantflow_checklist_transitions_total",
			Help: "Checklist status transitions by kind",
		}, []string{"kind"}), // kind: "raise", "approve", "deny"

		LinksWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grantflow_checklist_links_written_total",
			Help: "Evidence link slot writes (including clears)",
		}),

		LinksRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grantflow_checklist_links_rejected_total",
			Help: "Evidence link writes rejected by the domain allow-list",
		}),

		Conflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grantflow_checklist_version_conflicts_total",
			Help: "Compare-and-set conflicts on checklist writes",
		}),
	}
}

// IncTransition records a successful status transition.
func (m *Metrics) IncTransition(kind string) {
	if m != nil {
		m.Transitions.WithLabelValues(kind).Inc()
	}
}

// IncLinkWritten records a successful slot write.
func (m *Metrics) IncLinkWritten() {
	if m != nil {
		m.LinksWritten.Inc()
	}
}

// IncLinkRejected records a slot write rejected by the allow-list.
func (m *Metrics) IncLinkRejected() {
	if m != nil {
		m.LinksRejected.Inc()
	}
}

// IncConflict records a compare-and-set conflict.
func (m *Metrics) IncConflict() {
	if m != nil {
		m.Conflicts.Inc()
	}
}
