package syncing

import "github.com/vfg2006/budget-monitor-api/internal/domain"

// SyncRequest identifica a integração a sincronizar; AccountID e Provider são opcionais.
// Caller é o chamador da API; quando nil a execução é do sistema (schedulers).
type SyncRequest struct {
	IntegrationID string          `json:"integration_id"`
	AccountID     string          `json:"account_id,omitempty"`
	Provider      domain.Provider `json:"-"`
	Caller        *domain.Claims  `json:"-"`
}

type SyncResult struct {
	AccountsSynced      int `json:"accounts_synced"`
	AccountsDeactivated int `json:"accounts_deactivated"`
	CampaignsSynced     int `json:"campaigns_synced"`
	CampaignsDisabled   int `json:"campaigns_disabled"`
	MetricsSynced       int `json:"metrics_synced"`
	AdGroupsSynced      int `json:"ad_groups_synced"`
	Errors              int `json:"errors"`
}

func (r *SyncResult) RecordsProcessed() int {
	return r.AccountsSynced + r.CampaignsSynced + r.MetricsSynced + r.AdGroupsSynced
}

func (r *SyncResult) Details() map[string]any {
	return map[string]any{
		"accounts_synced":      r.AccountsSynced,
		"accounts_deactivated": r.AccountsDeactivated,
		"campaigns_synced":     r.CampaignsSynced,
		"campaigns_disabled":   r.CampaignsDisabled,
		"metrics_synced":       r.MetricsSynced,
		"ad_groups_synced":     r.AdGroupsSynced,
	}
}

// campaignOutcome é o resultado do processamento de uma campanha dentro de um lote
type campaignOutcome struct {
	metrics  int
	adGroups int
	disabled bool
	err      error
}
