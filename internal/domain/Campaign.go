package domain

import "time"

const (
	CampaignStatusActive   = "ACTIVE"
	CampaignStatusPaused   = "PAUSED"
	CampaignStatusDeleted  = "DELETED"
	CampaignStatusArchived = "ARCHIVED"
	CampaignStatusRemoved  = "REMOVED"
)

// Campaign pertence a exatamente uma conta. Chave natural: (ad_account_id, campaign_id).
type Campaign struct {
	ID             string    `json:"id"`
	AdAccountID    string    `json:"ad_account_id"`
	CampaignID     string    `json:"campaign_id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	Objective      string    `json:"objective"`
	DailyBudget    *float64  `json:"daily_budget"`
	LifetimeBudget *float64  `json:"lifetime_budget"`
	SyncEnabled    bool      `json:"sync_enabled"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EffectiveBudget retorna o orçamento usado no monitoramento: o diário tem prioridade,
// o vitalício é usado quando o diário está ausente ou zerado.
func (c *Campaign) EffectiveBudget() float64 {
	if c.DailyBudget != nil && *c.DailyBudget > 0 {
		return *c.DailyBudget
	}
	if c.LifetimeBudget != nil && *c.LifetimeBudget > 0 {
		return *c.LifetimeBudget
	}
	return 0
}

// AdGroup cobre os conjuntos de anúncios do Meta e os grupos de anúncios do Google.
// Chave natural: (campaign_id, ad_group_id).
type AdGroup struct {
	ID             string   `json:"id"`
	CampaignID     string   `json:"campaign_id"`
	AdGroupID      string   `json:"ad_group_id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	DailyBudget    *float64 `json:"daily_budget"`
	LifetimeBudget *float64 `json:"lifetime_budget"`
}
