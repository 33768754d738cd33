// Package metrics holds the Prometheus collectors for the skip-log ledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Skip-log outcomes used as the "outcome" label.
const (
	OutcomeLogged        = "logged"
	OutcomeAlreadyLogged = "already_logged"
	OutcomeNotFound      = "not_found"
	OutcomeNoActiveGoal  = "no_active_goal"
	OutcomeError         = "error"
)

var SkipLogs = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "skipjar",
	Subsystem: "ledger",
	Name:      "skip_logs_total",
	Help:      "Skip-log requests by outcome.",
}, []string{"outcome"})

var SkipLogDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "skipjar",
	Subsystem: "ledger",
	Name:      "skip_log_duration_seconds",
	Help:      "Time spent in the skip-log transaction, retries included.",
	Buckets:   prometheus.DefBuckets,
})

var AmountSaved = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "skipjar",
	Subsystem: "ledger",
	Name:      "amount_saved_total",
	Help:      "Currency funded into goals by accepted skips.",
})

var GoalsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "skipjar",
	Subsystem: "ledger",
	Name:      "goals_unlocked_total",
	Help:      "Goals whose savings reached the price.",
})

var VersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "skipjar",
	Subsystem: "ledger",
	Name:      "version_conflicts_total",
	Help:      "Skip-log transactions re-run after a concurrent write.",
})

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "skipjar",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by method and status.",
}, []string{"method", "status"})

func Handler() http.Handler {
	return promhttp.Handler()
}
