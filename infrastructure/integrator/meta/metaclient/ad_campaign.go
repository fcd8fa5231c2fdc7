package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

// GetCampaigns lista as campanhas de uma conta; accountID sem o prefixo "act_"
func (c *MetaClient) GetCampaigns(ctx context.Context, token, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,objective,daily_budget,lifetime_budget")
	params.Add("limit", "100")
	params.Add("access_token", token)

	return getAll[metadomain.Campaign](ctx, c, fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.URL, accountID), params)
}

// GetCampaignInsights busca os insights diários da campanha no intervalo informado
func (c *MetaClient) GetCampaignInsights(ctx context.Context, token, campaignID string, dateRange domain.DateRange) ([]metadomain.CampaignInsight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", utils.FormatDate(dateRange.Since), utils.FormatDate(dateRange.Until))

	params := url.Values{}
	params.Add("fields", "campaign_id,spend,impressions,clicks,reach,objective,actions")
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1")
	params.Add("level", "campaign")
	params.Add("access_token", token)

	return getAll[metadomain.CampaignInsight](ctx, c, fmt.Sprintf("%s/%s/insights", c.Cfg.URL, campaignID), params)
}

// GetAdSets lista os conjuntos de anúncios da campanha
func (c *MetaClient) GetAdSets(ctx context.Context, token, campaignID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,daily_budget,lifetime_budget")
	params.Add("limit", "100")
	params.Add("access_token", token)

	return getAll[metadomain.AdSet](ctx, c, fmt.Sprintf("%s/%s/adsets", c.Cfg.URL, campaignID), params)
}
