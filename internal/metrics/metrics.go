// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChoreToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "choreboard",
		Name:      "chore_toggles_total",
		Help:      "Chore completion toggles by resulting state.",
	}, []string{"state"})

	CompletionResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "choreboard",
		Name:      "completion_resets_total",
		Help:      "Bulk resets of chore completion.",
	})

	GroupReconciles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "choreboard",
		Name:      "group_reconciles_total",
		Help:      "Chore group definitions applied, by whether the group was new.",
	}, []string{"kind"})

	LedgerAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "choreboard",
		Name:      "ledger_adjustments_total",
		Help:      "Balance adjustments by currency and direction.",
	}, []string{"currency", "direction"})

	DayRollovers = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "choreboard",
		Name:      "day_rollovers_total",
		Help:      "Local calendar date changes observed by the rollover watcher.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "choreboard",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route pattern and status class.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Direction labels a ledger delta.
func Direction(delta int) string {
	switch {
	case delta > 0:
		return "credit"
	case delta < 0:
		return "debit"
	}
	return "zero"
}
