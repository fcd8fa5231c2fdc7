package domain

import (
	"fmt"
	"time"
)

// BudgetThresholds são os percentuais monitorados, do menor para o maior
var BudgetThresholds = []int{80, 90, 100}

// CampaignAlert representa um limite de orçamento atingido.
// Existe no máximo um alerta ativo por (campaign_id, threshold_amount).
type CampaignAlert struct {
	ID              string     `json:"id"`
	CampaignID      string     `json:"campaign_id"`
	AlertType       string     `json:"alert_type"`
	ThresholdAmount float64    `json:"threshold_amount"`
	CurrentAmount   float64    `json:"current_amount"`
	IsActive        bool       `json:"is_active"`
	TriggeredAt     time.Time  `json:"triggered_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
}

func AlertTypeForThreshold(threshold int) string {
	return fmt.Sprintf("budget_%d_percent", threshold)
}
