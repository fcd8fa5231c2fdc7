package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

const (
	customerQuery = `SELECT customer.id, customer.descriptive_name, customer.currency_code, customer.time_zone, customer.status, customer.manager FROM customer LIMIT 1`

	campaignQuery = `SELECT campaign.id, campaign.name, campaign.status, campaign.advertising_channel_type, campaign_budget.amount_micros, campaign_budget.total_amount_micros FROM campaign WHERE campaign.status != 'REMOVED'`

	campaignMetricsQuery = `SELECT campaign.id, segments.date, metrics.cost_micros, metrics.impressions, metrics.clicks, metrics.conversions FROM campaign WHERE campaign.id = %s AND segments.date BETWEEN '%s' AND '%s'`

	adGroupQuery = `SELECT ad_group.id, ad_group.name, ad_group.status, ad_group.cpc_bid_micros FROM ad_group WHERE campaign.id = %s AND ad_group.status != 'REMOVED'`
)

// GoogleIntegrator traduz as consultas GAQL para o modelo de domínio
type GoogleIntegrator struct {
	Client googleclient.Client
}

func New(client googleclient.Client) *GoogleIntegrator {
	return &GoogleIntegrator{
		Client: client,
	}
}

func (s *GoogleIntegrator) Provider() domain.Provider {
	return domain.ProviderGoogle
}

// ListAdAccounts consulta os dados de cada customer acessível; contas gerenciadoras (MCC) são ignoradas
func (s *GoogleIntegrator) ListAdAccounts(ctx context.Context, token string) ([]*domain.AdAccount, error) {
	customerIDs, err := s.Client.ListAccessibleCustomers(ctx, token)
	if err != nil {
		logrus.WithError(err).Error("google: failed to list accessible customers")
		return nil, err
	}

	accounts := make([]*domain.AdAccount, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		rows, err := s.Client.Search(ctx, token, customerID, customerQuery)
		if err != nil {
			// contas sem permissão aparecem na listagem mas falham na consulta
			if domain.IsAccessRevoked(err) || domain.IsResourceGone(err) {
				logrus.WithField("customer_id", customerID).WithError(err).Warn("google: skipping inaccessible customer")
				continue
			}
			return nil, err
		}

		if len(rows) == 0 || rows[0].Customer == nil {
			continue
		}

		customer := rows[0].Customer
		if customer.Manager {
			continue
		}

		accounts = append(accounts, &domain.AdAccount{
			AccountID: customerID,
			Name:      customer.DescriptiveName,
			Currency:  customer.CurrencyCode,
			Timezone:  customer.TimeZone,
			IsActive:  customer.Status == "" || customer.Status == "ENABLED",
		})
	}

	return accounts, nil
}

func (s *GoogleIntegrator) ListCampaigns(ctx context.Context, token, accountID string) ([]*domain.Campaign, error) {
	rows, err := s.Client.Search(ctx, token, accountID, campaignQuery)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("google: failed to list campaigns")
		return nil, err
	}

	campaigns := make([]*domain.Campaign, 0, len(rows))
	for _, row := range rows {
		if row.Campaign == nil {
			continue
		}
		campaigns = append(campaigns, FactoryCampaign(row))
	}

	return campaigns, nil
}

func (s *GoogleIntegrator) ListCampaignMetrics(ctx context.Context, token, accountID, campaignID string, dateRange domain.DateRange) ([]*domain.Metric, error) {
	query := fmt.Sprintf(campaignMetricsQuery, campaignID, utils.FormatDate(dateRange.Since), utils.FormatDate(dateRange.Until))

	rows, err := s.Client.Search(ctx, token, accountID, query)
	if err != nil {
		return nil, err
	}

	metrics := make([]*domain.Metric, 0, len(rows))
	for _, row := range rows {
		if row.Segments == nil || row.Metrics == nil {
			continue
		}

		date, err := time.Parse(utils.DateLayout, row.Segments.Date)
		if err != nil {
			logrus.WithField("date", row.Segments.Date).Warn("google: skipping metric row with invalid date")
			continue
		}

		metrics = append(metrics, &domain.Metric{
			Date:        date,
			Spend:       utils.MicrosToAmount(utils.ParseInt64(row.Metrics.CostMicros)),
			Impressions: utils.ParseInt64(row.Metrics.Impressions),
			Clicks:      utils.ParseInt64(row.Metrics.Clicks),
			Conversions: row.Metrics.Conversions,
		})
	}

	return metrics, nil
}

func (s *GoogleIntegrator) ListAdGroups(ctx context.Context, token, accountID, campaignID string) ([]*domain.AdGroup, error) {
	rows, err := s.Client.Search(ctx, token, accountID, fmt.Sprintf(adGroupQuery, campaignID))
	if err != nil {
		return nil, err
	}

	groups := make([]*domain.AdGroup, 0, len(rows))
	for _, row := range rows {
		if row.AdGroup == nil {
			continue
		}
		groups = append(groups, &domain.AdGroup{
			AdGroupID: row.AdGroup.ID,
			Name:      row.AdGroup.Name,
			Status:    NormalizeStatus(row.AdGroup.Status),
		})
	}

	return groups, nil
}

// FactoryCampaign usa amount_micros como orçamento diário e total_amount_micros como vitalício
func FactoryCampaign(row googledomain.SearchRow) *domain.Campaign {
	campaign := &domain.Campaign{
		CampaignID: row.Campaign.ID,
		Name:       row.Campaign.Name,
		Status:     NormalizeStatus(row.Campaign.Status),
		Objective:  row.Campaign.AdvertisingChannelType,
	}

	if row.CampaignBudget != nil {
		if row.CampaignBudget.AmountMicros != "" {
			daily := utils.MicrosToAmount(utils.ParseInt64(row.CampaignBudget.AmountMicros))
			campaign.DailyBudget = &daily
		}
		if row.CampaignBudget.TotalAmountMicros != "" {
			lifetime := utils.MicrosToAmount(utils.ParseInt64(row.CampaignBudget.TotalAmountMicros))
			campaign.LifetimeBudget = &lifetime
		}
	}

	return campaign
}

// NormalizeStatus alinha os status do Google com os do Meta (ENABLED -> ACTIVE)
func NormalizeStatus(status string) string {
	switch strings.ToUpper(status) {
	case "ENABLED":
		return domain.CampaignStatusActive
	case "PAUSED":
		return domain.CampaignStatusPaused
	case "REMOVED":
		return domain.CampaignStatusRemoved
	}
	return strings.ToUpper(status)
}
