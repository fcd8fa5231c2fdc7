package meta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

// MetaIntegrator traduz as respostas do Graph API para o modelo de domínio
type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) Provider() domain.Provider {
	return domain.ProviderMeta
}

func (s *MetaIntegrator) ListAdAccounts(ctx context.Context, token string) ([]*domain.AdAccount, error) {
	resp, err := s.Client.GetAdAccounts(ctx, token)
	if err != nil {
		logrus.WithError(err).Error("meta: failed to list ad accounts")
		return nil, err
	}

	accounts := make([]*domain.AdAccount, 0, len(resp))
	for _, acc := range resp {
		accountID := acc.AccountID
		if accountID == "" {
			accountID = strings.TrimPrefix(acc.ID, "act_")
		}

		accounts = append(accounts, &domain.AdAccount{
			AccountID: accountID,
			Name:      acc.Name,
			Currency:  acc.Currency,
			Timezone:  acc.TimezoneName,
			IsActive:  acc.IsActive(),
		})
	}

	return accounts, nil
}

func (s *MetaIntegrator) ListCampaigns(ctx context.Context, token, accountID string) ([]*domain.Campaign, error) {
	resp, err := s.Client.GetCampaigns(ctx, token, accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("meta: failed to list campaigns")
		return nil, err
	}

	campaigns := make([]*domain.Campaign, 0, len(resp))
	for _, c := range resp {
		campaigns = append(campaigns, FactoryCampaign(c))
	}

	return campaigns, nil
}

func (s *MetaIntegrator) ListCampaignMetrics(ctx context.Context, token, accountID, campaignID string, dateRange domain.DateRange) ([]*domain.Metric, error) {
	resp, err := s.Client.GetCampaignInsights(ctx, token, campaignID, dateRange)
	if err != nil {
		return nil, err
	}

	metrics := make([]*domain.Metric, 0, len(resp))
	for i := range resp {
		metric, err := FactoryMetric(&resp[i])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"date_start":  resp[i].DateStart,
			}).WithError(err).Warn("meta: skipping insight row with invalid date")
			continue
		}
		metrics = append(metrics, metric)
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  accountID,
		"campaign_id": campaignID,
		"rows":        len(metrics),
	}).Debug("meta: successfully retrieved campaign insights")

	return metrics, nil
}

func (s *MetaIntegrator) ListAdGroups(ctx context.Context, token, accountID, campaignID string) ([]*domain.AdGroup, error) {
	resp, err := s.Client.GetAdSets(ctx, token, campaignID)
	if err != nil {
		return nil, err
	}

	groups := make([]*domain.AdGroup, 0, len(resp))
	for _, adSet := range resp {
		groups = append(groups, &domain.AdGroup{
			AdGroupID:      adSet.ID,
			Name:           adSet.Name,
			Status:         adSet.Status,
			DailyBudget:    utils.MinorUnitsToAmount(adSet.DailyBudget),
			LifetimeBudget: utils.MinorUnitsToAmount(adSet.LifetimeBudget),
		})
	}

	return groups, nil
}

// FactoryCampaign converte os orçamentos de centavos para a unidade da moeda
func FactoryCampaign(c metadomain.Campaign) *domain.Campaign {
	return &domain.Campaign{
		CampaignID:     c.ID,
		Name:           c.Name,
		Status:         strings.ToUpper(c.Status),
		Objective:      c.Objective,
		DailyBudget:    utils.MinorUnitsToAmount(c.DailyBudget),
		LifetimeBudget: utils.MinorUnitsToAmount(c.LifetimeBudget),
	}
}

func FactoryMetric(insight *metadomain.CampaignInsight) (*domain.Metric, error) {
	date, err := time.Parse(utils.DateLayout, insight.DateStart)
	if err != nil {
		return nil, fmt.Errorf("invalid date_start %q: %w", insight.DateStart, err)
	}

	return &domain.Metric{
		Date:        date,
		Spend:       utils.RoundWithTwoDecimalPlace(utils.ParseFloat(insight.Spend)),
		Impressions: utils.ParseInt64(insight.Impressions),
		Clicks:      utils.ParseInt64(insight.Clicks),
		Reach:       utils.ParseInt64(insight.Reach),
		Conversions: insight.GetConversions(),
	}, nil
}
