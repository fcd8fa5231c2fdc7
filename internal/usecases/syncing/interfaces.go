package syncing

import (
	"context"

	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

// ProviderSource é a visão de um provedor de anúncios usada pela sincronização.
// accountID e campaignID são os identificadores do provedor.
type ProviderSource interface {
	Provider() domain.Provider
	ListAdAccounts(ctx context.Context, token string) ([]*domain.AdAccount, error)
	ListCampaigns(ctx context.Context, token, accountID string) ([]*domain.Campaign, error)
	ListCampaignMetrics(ctx context.Context, token, accountID, campaignID string, dateRange domain.DateRange) ([]*domain.Metric, error)
	ListAdGroups(ctx context.Context, token, accountID, campaignID string) ([]*domain.AdGroup, error)
}

type Synchronizer interface {
	SyncIntegration(ctx context.Context, req SyncRequest) (*SyncResult, error)
}
