package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Renovações de token por provedor e resultado (success, failure)
	TokenRenewals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_renewals_total",
			Help: "Total number of provider token renewals",
		},
		[]string{"provider", "outcome"},
	)

	// Execuções de sincronização por provedor e status final
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_runs_total",
			Help: "Total number of campaign synchronization runs",
		},
		[]string{"provider", "status"},
	)

	// Registros gravados pela sincronização por entidade
	SyncedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_sync_records_total",
			Help: "Total number of records upserted by campaign synchronization",
		},
		[]string{"provider", "entity"},
	)

	BudgetMonitorRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_monitor_runs_total",
			Help: "Total number of budget monitor runs",
		},
		[]string{"status"},
	)

	// Alertas criados e atualizados pelo monitor
	BudgetAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_alerts_total",
			Help: "Total number of budget alerts created or refreshed",
		},
		[]string{"action"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Duration of background jobs in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"job"},
	)
)
