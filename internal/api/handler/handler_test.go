package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-monitor-api/internal/api/handler/router"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/integrating"
	integratingmocks "github.com/vfg2006/budget-monitor-api/internal/usecases/integrating/mocks"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/monitoring"
	monitormocks "github.com/vfg2006/budget-monitor-api/internal/usecases/monitoring/mocks"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/budget-monitor-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/tokenvault"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
	"github.com/vfg2006/budget-monitor-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var (
	userClaims = &domain.Claims{
		Role:             domain.RoleAuthenticated,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}
	serviceClaims = &domain.Claims{Role: domain.RoleServiceRole}
)

// serve monta o router com as rotas informadas, injetando o chamador como faria o AuthMiddleware
func serve(t *testing.T, routes []router.Route, claims *domain.Claims, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	rt := router.New(router.WithRoutes(routes...))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := map[string]any{}
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&body))
	return body
}

func TestMonitorBudgets(t *testing.T) {
	t.Run("returns run counters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		monitor := monitormocks.NewMockMonitor(ctrl)
		monitor.EXPECT().MonitorBudgets(gomock.Any()).Return(&monitoring.MonitorResult{
			CampaignsChecked: 4,
			CampaignsSkipped: 1,
			AlertsCreated:    3,
			AlertsUpdated:    2,
		}, nil)

		rec := serve(t, Budgets(monitor), userClaims, http.MethodPost, "/v1/budgets/monitor", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.EqualValues(t, 4, body["campaigns_checked"])
		assert.EqualValues(t, 1, body["campaigns_skipped"])
		assert.EqualValues(t, 0, body["campaigns_failed"])
		assert.EqualValues(t, 3, body["alerts_created"])
		assert.EqualValues(t, 2, body["alerts_updated"])
	})

	t.Run("infrastructure failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		monitor := monitormocks.NewMockMonitor(ctrl)
		monitor.EXPECT().MonitorBudgets(gomock.Any()).Return(nil, errors.New("connection refused"))

		rec := serve(t, Budgets(monitor), userClaims, http.MethodPost, "/v1/budgets/monitor", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, apiErrors.ErrDatabaseOperation, body["code"])
	})

	t.Run("requires an authenticated caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		monitor := monitormocks.NewMockMonitor(ctrl)

		rec := serve(t, Budgets(monitor), nil, http.MethodPost, "/v1/budgets/monitor", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSyncProvider(t *testing.T) {
	providerErr := func(kind domain.ProviderErrorKind) error {
		return &domain.ProviderError{Provider: domain.ProviderMeta, Kind: kind, Message: "boom"}
	}

	tests := []struct {
		name       string
		target     string
		body       string
		setup      func(s *syncmocks.MockSynchronizer)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "successful sync",
			target: "/v1/sync/meta",
			body:   `{"integration_id":"int-1","account_id":"act_1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				s.EXPECT().SyncIntegration(gomock.Any(), syncing.SyncRequest{
					IntegrationID: "int-1",
					AccountID:     "act_1",
					Provider:      domain.ProviderMeta,
					Caller:        userClaims,
				}).Return(&syncing.SyncResult{AccountsSynced: 1, CampaignsSynced: 2, MetricsSynced: 14}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown provider",
			target:     "/v1/sync/tiktok",
			body:       `{"integration_id":"int-1"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "malformed body",
			target:     "/v1/sync/google",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "missing integration id",
			target:     "/v1/sync/google",
			body:       `{"account_id":"123"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "integration not found",
			target: "/v1/sync/meta",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, syncing.ErrIntegrationNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrNotFound,
		},
		{
			name:   "provider mismatch",
			target: "/v1/sync/google",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, syncing.ErrProviderMismatch)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:   "session expired",
			target: "/v1/sync/meta",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				err := fmt.Errorf("%w: %w", syncing.ErrSessionExpired, providerErr(domain.ProviderErrorAuthorization))
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, err)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrReauthorizationRequired,
		},
		{
			name:   "google integration without refresh token",
			target: "/v1/sync/google",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				renewalErr := &tokenvault.RenewalError{IntegrationID: "int-1", Provider: domain.ProviderGoogle, Err: tokenvault.ErrMissingRefreshToken}
				err := fmt.Errorf("%w: %w", syncing.ErrSessionExpired, renewalErr)
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, err)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrOfflineAccessRequired,
		},
		{
			name:   "access revoked at run level",
			target: "/v1/sync/meta",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				err := fmt.Errorf("failed to list ad accounts: %w", providerErr(domain.ProviderErrorAccessRevoked))
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, err)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrProviderAccessRevoked,
		},
		{
			name:   "provider failure outside the taxonomy",
			target: "/v1/sync/meta",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				err := fmt.Errorf("failed to list ad accounts: %w", providerErr(domain.ProviderErrorTransient))
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, err)
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   apiErrors.ErrProviderFailure,
		},
		{
			name:   "missing provider credentials",
			target: "/v1/sync/google",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				err := fmt.Errorf("failed to obtain access token: %w", &config.MissingConfigError{Keys: []string{"GOOGLE_CLIENT_ID"}})
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, err)
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrMissingConfig,
		},
		{
			name:   "unexpected failure",
			target: "/v1/sync/meta",
			body:   `{"integration_id":"int-1"}`,
			setup: func(s *syncmocks.MockSynchronizer) {
				s.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).Return(nil, errors.New("failed to start sync log: connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			synchronizer := syncmocks.NewMockSynchronizer(ctrl)
			if tt.setup != nil {
				tt.setup(synchronizer)
			}

			rec := serve(t, Sync(synchronizer), userClaims, http.MethodPost, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			if tt.wantCode == "" {
				assert.Equal(t, true, body["success"])
				assert.EqualValues(t, 14, body["metrics_synced"])
				return
			}
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}

	t.Run("requires an authenticated caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		synchronizer := syncmocks.NewMockSynchronizer(ctrl)

		rec := serve(t, Sync(synchronizer), nil, http.MethodPost, "/v1/sync/meta", `{"integration_id":"int-1"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("integration owned by another user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		synchronizer := syncmocks.NewMockSynchronizer(ctrl)
		otherUser := &domain.Claims{
			Role:             domain.RoleAuthenticated,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-b"},
		}
		synchronizer.EXPECT().SyncIntegration(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req syncing.SyncRequest) (*syncing.SyncResult, error) {
				assert.Equal(t, "user-b", req.Caller.UserID())
				return nil, syncing.ErrIntegrationNotFound
			})

		rec := serve(t, Sync(synchronizer), otherUser, http.MethodPost, "/v1/sync/meta", `{"integration_id":"int-owned-by-user-a"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decodeBody(t, rec)["code"])
	})
}

func TestIntegrationRoutes(t *testing.T) {
	expiresAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	notFound := integrating.NewIntegrationErrorWithID(integrating.ErrIntegrationNotFound, apiErrors.ErrNotFound, "int-9", "")

	tests := []struct {
		name       string
		method     string
		target     string
		claims     *domain.Claims
		setup      func(m *integratingmocks.MockIntegrationManager)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:   "list integrations of the caller",
			method: http.MethodGet,
			target: "/v1/integrations",
			claims: userClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().ListIntegrations(gomock.Any(), "user-1").Return([]*domain.IntegrationResponse{
					{ID: "int-1", Provider: domain.ProviderMeta, Status: domain.IntegrationStatusActive},
				}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				require.Len(t, body["data"], 1)
			},
		},
		{
			name:   "refresh returns status and expiry",
			method: http.MethodPost,
			target: "/v1/integrations/int-1/refresh",
			claims: userClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().RefreshIntegration(gomock.Any(), userClaims, "int-1").Return(&integrating.RefreshResult{
					Status:    domain.IntegrationStatusActive,
					ExpiresAt: &expiresAt,
				}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "active", body["status"])
				assert.Equal(t, "2026-03-01T12:00:00Z", body["expires_at"])
				assert.NotContains(t, body, "access_token")
			},
		},
		{
			name:   "refresh needing re-authorization",
			method: http.MethodPost,
			target: "/v1/integrations/int-1/refresh",
			claims: userClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().RefreshIntegration(gomock.Any(), userClaims, "int-1").Return(nil,
					integrating.NewIntegrationErrorWithID(integrating.ErrReauthorizationRequired, apiErrors.ErrReauthorizationRequired, "int-1", "refresh token revoked"))
			},
			wantStatus: http.StatusForbidden,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrReauthorizationRequired, body["code"])
			},
		},
		{
			name:   "remove integration",
			method: http.MethodDelete,
			target: "/v1/integrations/int-1",
			claims: userClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().RemoveIntegration(gomock.Any(), userClaims, "int-1").Return(nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, map[string]any{"success": true}, body)
			},
		},
		{
			name:   "remove integration of another user",
			method: http.MethodDelete,
			target: "/v1/integrations/int-9",
			claims: userClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().RemoveIntegration(gomock.Any(), userClaims, "int-9").Return(notFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "sync logs with explicit limit",
			method: http.MethodGet,
			target: "/v1/integrations/int-1/sync-logs?limit=5",
			claims: serviceClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().ListSyncLogs(gomock.Any(), serviceClaims, "int-1", 5).Return([]*domain.SyncLog{
					{ID: "log-1", SyncType: domain.SyncTypeForProvider(domain.ProviderMeta), Status: domain.SyncStatusSuccess},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "sync logs default limit",
			method: http.MethodGet,
			target: "/v1/integrations/int-1/sync-logs",
			claims: userClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().ListSyncLogs(gomock.Any(), userClaims, "int-1", integrating.DefaultSyncLogLimit).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "sync logs with invalid limit",
			method:     http.MethodGet,
			target:     "/v1/integrations/int-1/sync-logs?limit=abc",
			claims:     userClaims,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "database failure",
			method: http.MethodGet,
			target: "/v1/integrations",
			claims: userClaims,
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().ListIntegrations(gomock.Any(), "user-1").Return(nil,
					integrating.NewIntegrationError(integrating.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar integrações"))
			},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrDatabaseOperation, body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			manager := integratingmocks.NewMockIntegrationManager(ctrl)
			if tt.setup != nil {
				tt.setup(manager)
			}

			rec := serve(t, Integrations(manager), tt.claims, tt.method, tt.target, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, decodeBody(t, rec))
			}
		})
	}
}

func TestListCampaignAlerts(t *testing.T) {
	triggeredAt := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		setup      func(m *integratingmocks.MockIntegrationManager)
		wantStatus int
		wantLen    int
	}{
		{
			name:   "only active alerts",
			target: "/v1/campaigns/cmp-1/alerts?active=true",
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().ListCampaignAlerts(gomock.Any(), userClaims, "cmp-1", true).Return([]*domain.CampaignAlert{
					{ID: "a1", CampaignID: "cmp-1", AlertType: domain.AlertTypeForThreshold(80), ThresholdAmount: 80, CurrentAmount: 85, IsActive: true, TriggeredAt: triggeredAt},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    1,
		},
		{
			name:   "all alerts by default",
			target: "/v1/campaigns/cmp-1/alerts",
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().ListCampaignAlerts(gomock.Any(), userClaims, "cmp-1", false).Return([]*domain.CampaignAlert{
					{ID: "a1", CampaignID: "cmp-1", IsActive: true, TriggeredAt: triggeredAt},
					{ID: "a0", CampaignID: "cmp-1", IsActive: false, TriggeredAt: triggeredAt},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:       "invalid active flag",
			target:     "/v1/campaigns/cmp-1/alerts?active=maybe",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "campaign of another user",
			target: "/v1/campaigns/cmp-2/alerts",
			setup: func(m *integratingmocks.MockIntegrationManager) {
				m.EXPECT().ListCampaignAlerts(gomock.Any(), userClaims, "cmp-2", false).Return(nil,
					integrating.NewIntegrationError(integrating.ErrCampaignNotFound, apiErrors.ErrNotFound, ""))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			manager := integratingmocks.NewMockIntegrationManager(ctrl)
			if tt.setup != nil {
				tt.setup(manager)
			}

			rec := serve(t, CampaignAlerts(manager), userClaims, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				body := decodeBody(t, rec)
				assert.Len(t, body["data"], tt.wantLen)
			}
		})
	}
}

type fakeCronJob struct {
	triggered int
	status    map[string]any
}

func (f *fakeCronJob) TriggerManualSync() { f.triggered++ }

func (f *fakeCronJob) GetStatus() map[string]any { return f.status }

func TestCronJobs(t *testing.T) {
	newServices := func() (CronJobServices, *fakeCronJob, *fakeCronJob, *fakeCronJob) {
		meta := &fakeCronJob{status: map[string]any{"sync_running": false}}
		google := &fakeCronJob{status: map[string]any{"sync_running": true}}
		monitor := &fakeCronJob{status: map[string]any{"workers": 4}}
		return CronJobServices{MetaSyncService: meta, GoogleSyncService: google, BudgetMonitorService: monitor}, meta, google, monitor
	}

	t.Run("triggers a single job", func(t *testing.T) {
		services, meta, google, monitor := newServices()

		rec := serve(t, CronJobs(services), serviceClaims, http.MethodPost, "/v1/cron/monitor/run", "")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 0, meta.triggered)
		assert.Equal(t, 0, google.triggered)
		assert.Equal(t, 1, monitor.triggered)
	})

	t.Run("triggers every job", func(t *testing.T) {
		services, meta, google, monitor := newServices()

		rec := serve(t, CronJobs(services), serviceClaims, http.MethodPost, "/v1/cron/all/run", "")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 1, meta.triggered)
		assert.Equal(t, 1, google.triggered)
		assert.Equal(t, 1, monitor.triggered)
	})

	t.Run("rejects unknown job", func(t *testing.T) {
		services, _, _, _ := newServices()

		rec := serve(t, CronJobs(services), serviceClaims, http.MethodPost, "/v1/cron/weekly/run", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("job not configured", func(t *testing.T) {
		services, _, _, _ := newServices()
		services.GoogleSyncService = nil

		rec := serve(t, CronJobs(services), serviceClaims, http.MethodPost, "/v1/cron/google/run", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("user callers are forbidden", func(t *testing.T) {
		services, meta, _, _ := newServices()

		rec := serve(t, CronJobs(services), userClaims, http.MethodPost, "/v1/cron/meta/run", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, 0, meta.triggered)
	})

	t.Run("status of every job", func(t *testing.T) {
		services, _, _, _ := newServices()

		rec := serve(t, CronJobs(services), serviceClaims, http.MethodGet, "/v1/cron/status", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		jobs, ok := body["jobs"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, jobs, 3)
		assert.Contains(t, jobs, CronJobTypeMonitor)
	})
}

func TestHealthcheck(t *testing.T) {
	rec := serve(t, Healthcheck(), nil, http.MethodGet, "/healthcheck", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := time.Parse(time.RFC3339, rec.Body.String())
	assert.NoError(t, err)
}
