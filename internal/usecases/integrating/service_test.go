package integrating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/tokenvault"
	vaultmocks "github.com/vfg2006/budget-monitor-api/internal/usecases/tokenvault/mocks"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	integrations *mocks.MockIntegrationRepository
	campaigns    *mocks.MockCampaignRepository
	alerts       *mocks.MockCampaignAlertRepository
	syncLogs     *mocks.MockSyncLogRepository
	tokens       *vaultmocks.MockTokenAccessor
	service      IntegrationManager
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		integrations: mocks.NewMockIntegrationRepository(ctrl),
		campaigns:    mocks.NewMockCampaignRepository(ctrl),
		alerts:       mocks.NewMockCampaignAlertRepository(ctrl),
		syncLogs:     mocks.NewMockSyncLogRepository(ctrl),
		tokens:       vaultmocks.NewMockTokenAccessor(ctrl),
	}
	f.service = NewService(f.integrations, f.campaigns, f.alerts, f.syncLogs, f.tokens)
	return f
}

func userClaims(userID string) *domain.Claims {
	return &domain.Claims{
		Role:             domain.RoleAuthenticated,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	}
}

func serviceClaims() *domain.Claims {
	return &domain.Claims{Role: domain.RoleServiceRole}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var integrationErr *IntegrationError
	require.True(t, errors.As(err, &integrationErr), "expected IntegrationError, got %v", err)
	return integrationErr.Code
}

func TestService_ListIntegrations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	expiresAt := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	f.integrations.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]*domain.Integration{
		{ID: "int-1", UserID: "user-1", Provider: domain.ProviderMeta, AccessToken: "secret", Status: domain.IntegrationStatusActive, ExpiresAt: &expiresAt},
	}, nil)

	integrations, err := f.service.ListIntegrations(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, integrations, 1)
	assert.Equal(t, "int-1", integrations[0].ID)
	assert.Equal(t, &expiresAt, integrations[0].ExpiresAt)
}

func TestService_RefreshIntegration(t *testing.T) {
	expiresAt := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		claims     *domain.Claims
		stored     *domain.Integration
		tokenErr   error
		reloaded   *domain.Integration
		wantStatus domain.IntegrationStatus
		wantCode   string
	}{
		{
			name:       "Dono renova com sucesso",
			claims:     userClaims("user-1"),
			stored:     &domain.Integration{ID: "int-1", UserID: "user-1", Provider: domain.ProviderMeta},
			reloaded:   &domain.Integration{ID: "int-1", UserID: "user-1", Status: domain.IntegrationStatusActive, ExpiresAt: &expiresAt},
			wantStatus: domain.IntegrationStatusActive,
		},
		{
			name:       "Service role acessa integração de qualquer usuário",
			claims:     serviceClaims(),
			stored:     &domain.Integration{ID: "int-1", UserID: "user-2", Provider: domain.ProviderGoogle},
			reloaded:   &domain.Integration{ID: "int-1", UserID: "user-2", Status: domain.IntegrationStatusActive, ExpiresAt: &expiresAt},
			wantStatus: domain.IntegrationStatusActive,
		},
		{
			name:     "Integração de outro usuário é tratada como inexistente",
			claims:   userClaims("user-1"),
			stored:   &domain.Integration{ID: "int-1", UserID: "user-2"},
			wantCode: apiErrors.ErrNotFound,
		},
		{
			name:     "Integração inexistente",
			claims:   userClaims("user-1"),
			wantCode: apiErrors.ErrNotFound,
		},
		{
			name:     "Renovação falhou exige nova autorização",
			claims:   userClaims("user-1"),
			stored:   &domain.Integration{ID: "int-1", UserID: "user-1"},
			tokenErr: &tokenvault.RenewalError{IntegrationID: "int-1", Err: errors.New("invalid_grant")},
			wantCode: apiErrors.ErrReauthorizationRequired,
		},
		{
			name:     "Google sem refresh token exige acesso offline",
			claims:   userClaims("user-1"),
			stored:   &domain.Integration{ID: "int-1", UserID: "user-1", Provider: domain.ProviderGoogle},
			tokenErr: &tokenvault.RenewalError{IntegrationID: "int-1", Provider: domain.ProviderGoogle, Err: tokenvault.ErrMissingRefreshToken},
			wantCode: apiErrors.ErrOfflineAccessRequired,
		},
		{
			name:     "Credenciais do provedor ausentes",
			claims:   userClaims("user-1"),
			stored:   &domain.Integration{ID: "int-1", UserID: "user-1"},
			tokenErr: &tokenvault.RenewalError{IntegrationID: "int-1", Err: &config.MissingConfigError{Keys: []string{"META_APP_ID"}}},
			wantCode: apiErrors.ErrMissingConfig,
		},
		{
			name:     "Falha genérica do provedor",
			claims:   userClaims("user-1"),
			stored:   &domain.Integration{ID: "int-1", UserID: "user-1"},
			tokenErr: errors.New("failed to persist renewed token"),
			wantCode: apiErrors.ErrProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			first := f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(tt.stored, nil)

			if tt.stored != nil && tt.claims.CanAccess(tt.stored.UserID) {
				f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "int-1").Return("token", tt.tokenErr)
			}
			if tt.reloaded != nil {
				f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(tt.reloaded, nil).After(first)
			}

			result, err := f.service.RefreshIntegration(context.Background(), tt.claims, "int-1")

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errorCode(t, err))
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, &expiresAt, result.ExpiresAt)
		})
	}
}

func TestService_RemoveIntegration(t *testing.T) {
	t.Run("Dono remove a integração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(&domain.Integration{ID: "int-1", UserID: "user-1"}, nil)
		f.integrations.EXPECT().Delete(gomock.Any(), "int-1").Return(nil)

		require.NoError(t, f.service.RemoveIntegration(context.Background(), userClaims("user-1"), "int-1"))
	})

	t.Run("Remoção concorrente vira not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(&domain.Integration{ID: "int-1", UserID: "user-1"}, nil)
		f.integrations.EXPECT().Delete(gomock.Any(), "int-1").Return(repository.ErrNotFound)

		err := f.service.RemoveIntegration(context.Background(), userClaims("user-1"), "int-1")
		assert.Equal(t, apiErrors.ErrNotFound, errorCode(t, err))
	})

	t.Run("ID obrigatório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		err := f.service.RemoveIntegration(context.Background(), userClaims("user-1"), "")
		assert.ErrorIs(t, err, ErrIntegrationIDRequired)
	})
}

func TestService_ListCampaignAlerts(t *testing.T) {
	alerts := []*domain.CampaignAlert{{ID: "alert-1", CampaignID: "camp-1", IsActive: true}}

	t.Run("Dono da campanha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.campaigns.EXPECT().GetOwnerUserID(gomock.Any(), "camp-1").Return("user-1", nil)
		f.alerts.EXPECT().ListByCampaign(gomock.Any(), "camp-1", true).Return(alerts, nil)

		result, err := f.service.ListCampaignAlerts(context.Background(), userClaims("user-1"), "camp-1", true)
		require.NoError(t, err)
		assert.Equal(t, alerts, result)
	})

	t.Run("Campanha de outro usuário", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.campaigns.EXPECT().GetOwnerUserID(gomock.Any(), "camp-1").Return("user-2", nil)

		_, err := f.service.ListCampaignAlerts(context.Background(), userClaims("user-1"), "camp-1", false)
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})

	t.Run("Service role não consulta o dono", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.alerts.EXPECT().ListByCampaign(gomock.Any(), "camp-1", false).Return(alerts, nil)

		result, err := f.service.ListCampaignAlerts(context.Background(), serviceClaims(), "camp-1", false)
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})
}

func TestService_ListSyncLogs_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(&domain.Integration{ID: "int-1", UserID: "user-1"}, nil)
	f.syncLogs.EXPECT().ListByIntegration(gomock.Any(), "int-1", DefaultSyncLogLimit).Return([]*domain.SyncLog{{ID: "log-1"}}, nil)

	logs, err := f.service.ListSyncLogs(context.Background(), userClaims("user-1"), "int-1", 0)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
