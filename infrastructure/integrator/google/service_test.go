package google

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	googledomain "github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google/mocks"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func customerRow(name string, manager bool) []googledomain.SearchRow {
	return []googledomain.SearchRow{{
		Customer: &googledomain.Customer{
			DescriptiveName: name,
			CurrencyCode:    "BRL",
			TimeZone:        "America/Sao_Paulo",
			Status:          "ENABLED",
			Manager:         manager,
		},
	}}
}

func TestGoogleIntegrator_ListAdAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().ListAccessibleCustomers(gomock.Any(), "token").Return([]string{"111", "222", "333"}, nil)
	client.EXPECT().Search(gomock.Any(), "token", "111", customerQuery).Return(customerRow("Loja Centro", false), nil)
	client.EXPECT().Search(gomock.Any(), "token", "222", customerQuery).Return(customerRow("MCC", true), nil)
	client.EXPECT().Search(gomock.Any(), "token", "333", customerQuery).Return(nil,
		&domain.ProviderError{Provider: domain.ProviderGoogle, Kind: domain.ProviderErrorAccessRevoked, StatusCode: 403})

	accounts, err := New(client).ListAdAccounts(context.Background(), "token")

	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "111", accounts[0].AccountID)
	assert.Equal(t, "Loja Centro", accounts[0].Name)
	assert.True(t, accounts[0].IsActive)
}

func TestGoogleIntegrator_ListAdAccounts_AbortsOnAuthorizationError(t *testing.T) {
	authErr := &domain.ProviderError{Provider: domain.ProviderGoogle, Kind: domain.ProviderErrorAuthorization, StatusCode: 401}

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().ListAccessibleCustomers(gomock.Any(), "token").Return([]string{"111"}, nil)
	client.EXPECT().Search(gomock.Any(), "token", "111", customerQuery).Return(nil, authErr)

	_, err := New(client).ListAdAccounts(context.Background(), "token")

	assert.True(t, errors.Is(err, authErr))
}

func TestGoogleIntegrator_ListCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().Search(gomock.Any(), "token", "111", campaignQuery).Return([]googledomain.SearchRow{
		{
			Campaign:       &googledomain.Campaign{ID: "9", Name: "Pesquisa", Status: "ENABLED", AdvertisingChannelType: "SEARCH"},
			CampaignBudget: &googledomain.CampaignBudget{AmountMicros: "25000000"},
		},
		{
			Campaign: &googledomain.Campaign{ID: "10", Name: "Sem orçamento", Status: "PAUSED"},
		},
		{Metrics: &googledomain.Metrics{}},
	}, nil)

	campaigns, err := New(client).ListCampaigns(context.Background(), "token", "111")

	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, domain.CampaignStatusActive, campaigns[0].Status)
	require.NotNil(t, campaigns[0].DailyBudget)
	assert.Equal(t, 25.0, *campaigns[0].DailyBudget)
	assert.Nil(t, campaigns[0].LifetimeBudget)
	assert.Equal(t, domain.CampaignStatusPaused, campaigns[1].Status)
	assert.Nil(t, campaigns[1].DailyBudget)
}

func TestGoogleIntegrator_ListCampaignMetrics(t *testing.T) {
	dateRange := domain.DateRange{
		Since: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().Search(gomock.Any(), "token", "111", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _, query string) ([]googledomain.SearchRow, error) {
			assert.Contains(t, query, "campaign.id = 9")
			assert.Contains(t, query, "BETWEEN '2026-01-01' AND '2026-01-31'")
			return []googledomain.SearchRow{
				{
					Segments: &googledomain.Segments{Date: "2026-01-05"},
					Metrics:  &googledomain.Metrics{CostMicros: "12345678", Impressions: "300", Clicks: "12", Conversions: 1.5},
				},
				{Segments: &googledomain.Segments{Date: "2026-01-06"}},
			}, nil
		})

	metrics, err := New(client).ListCampaignMetrics(context.Background(), "token", "111", "9", dateRange)

	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, 12.35, metrics[0].Spend)
	assert.Equal(t, int64(300), metrics[0].Impressions)
	assert.Equal(t, 1.5, metrics[0].Conversions)
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]string{
		"ENABLED": domain.CampaignStatusActive,
		"enabled": domain.CampaignStatusActive,
		"PAUSED":  domain.CampaignStatusPaused,
		"REMOVED": domain.CampaignStatusRemoved,
		"unknown": "UNKNOWN",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeStatus(input), input)
	}
}
