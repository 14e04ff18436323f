package metrics

import "github.com/prometheus/client_golang/prometheus"

// Moderation check outcomes. "error" means the classifier failed and the
// submission went through on the fail-open path, so a rising error count
// is the operator signal for a degraded moderation service.
const (
	OutcomeOK      = "ok"
	OutcomeFlagged = "flagged"
	OutcomeError   = "error"
)

var ModerationChecks = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "grievgo_moderation_checks_total",
		Help: "Moderation checks by outcome (ok, flagged, error)",
	},
	[]string{"outcome"},
)

func Register() {
	prometheus.MustRegister(ModerationChecks)
}
