package domain

import "time"

type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusError   SyncStatus = "error"
)

const (
	SyncTypeBudgetMonitor = "budget_monitor"
)

// SyncTypeForProvider devolve o tipo gravado em sync_logs para uma sincronização de campanhas
func SyncTypeForProvider(provider Provider) string {
	return string(provider) + "_campaigns"
}

// SyncLog é a trilha de auditoria que a interface lê para exibir a última sincronização
type SyncLog struct {
	ID               string         `json:"id"`
	IntegrationID    *string        `json:"integration_id"`
	SyncType         string         `json:"sync_type"`
	Status           SyncStatus     `json:"status"`
	RecordsProcessed int            `json:"records_processed"`
	ErrorsCount      int            `json:"errors_count"`
	ErrorMessage     *string        `json:"error_message"`
	Details          map[string]any `json:"details"`
	StartedAt        time.Time      `json:"started_at"`
	CompletedAt      *time.Time     `json:"completed_at"`
}
