package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/budget-monitor-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/budget-monitor-api/pkg/lock"
	"go.uber.org/mock/gomock"
)

// failingLocker simula o Redis indisponível
type failingLocker struct{}

func (failingLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return nil, false, errors.New("dial tcp: connection refused")
}

func newCampaignSyncService(ctrl *gomock.Controller, locker lock.Locker) (*CampaignSyncService, *mocks.MockIntegrationRepository, *syncmocks.MockSynchronizer, *[]time.Duration) {
	integrationRepo := mocks.NewMockIntegrationRepository(ctrl)
	synchronizer := syncmocks.NewMockSynchronizer(ctrl)

	service := NewCampaignSyncService(domain.ProviderMeta, integrationRepo, synchronizer, locker, config.CampaignSync{
		MetaCronSchedule:    "0 */6 * * *",
		MetaEnabled:         true,
		GoogleCronSchedule:  "30 */6 * * *",
		RequestDelaySeconds: 2,
	})

	sleeps := &[]time.Duration{}
	service.sleep = func(_ context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	}

	return service, integrationRepo, synchronizer, sleeps
}

func TestCampaignSyncService_RunSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, integrationRepo, synchronizer, sleeps := newCampaignSyncService(ctrl, lock.NewLocalLocker())

	integrationRepo.EXPECT().ListActiveByProvider(gomock.Any(), domain.ProviderMeta).Return([]*domain.Integration{
		{ID: "int-1"}, {ID: "int-2"}, {ID: "int-3"},
	}, nil)

	gomock.InOrder(
		synchronizer.EXPECT().SyncIntegration(gomock.Any(), syncing.SyncRequest{IntegrationID: "int-1", Provider: domain.ProviderMeta}).
			Return(&syncing.SyncResult{CampaignsSynced: 4, Errors: 1}, nil),
		synchronizer.EXPECT().SyncIntegration(gomock.Any(), syncing.SyncRequest{IntegrationID: "int-2", Provider: domain.ProviderMeta}).
			Return(nil, syncing.ErrSessionExpired),
		synchronizer.EXPECT().SyncIntegration(gomock.Any(), syncing.SyncRequest{IntegrationID: "int-3", Provider: domain.ProviderMeta}).
			Return(&syncing.SyncResult{CampaignsSynced: 2}, nil),
	)

	summary := service.runSync(context.Background())

	assert.Equal(t, &CampaignSyncSummary{Integrations: 3, Succeeded: 2, Failed: 1, Errors: 1}, summary)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, *sleeps)

	status := service.GetStatus()
	assert.Equal(t, summary, status["last_sync_summary"])
	assert.Equal(t, false, status["sync_running"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestCampaignSyncService_RunSync_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, integrationRepo, _, _ := newCampaignSyncService(ctrl, lock.NewLocalLocker())
	integrationRepo.EXPECT().ListActiveByProvider(gomock.Any(), domain.ProviderMeta).Return(nil, errors.New("db down"))

	summary := service.runSync(context.Background())
	assert.Equal(t, 0, summary.Integrations)
}

func TestCampaignSyncService_SyncAllIntegrations_Lock(t *testing.T) {
	tests := []struct {
		name       string
		locker     func() lock.Locker
		expectSync bool
	}{
		{
			name:       "Lock livre executa a sincronização",
			locker:     func() lock.Locker { return lock.NewLocalLocker() },
			expectSync: true,
		},
		{
			name: "Lock ocupado por outra instância",
			locker: func() lock.Locker {
				locker := lock.NewLocalLocker()
				_, _, _ = locker.TryLock(context.Background(), "meta_campaigns", time.Hour)
				return locker
			},
		},
		{
			name:   "Falha ao obter o lock",
			locker: func() lock.Locker { return failingLocker{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, integrationRepo, _, _ := newCampaignSyncService(ctrl, tt.locker())

			if tt.expectSync {
				integrationRepo.EXPECT().ListActiveByProvider(gomock.Any(), domain.ProviderMeta).Return(nil, nil)
			}

			service.syncAllIntegrations(context.Background())

			service.syncMutex.Lock()
			defer service.syncMutex.Unlock()
			assert.False(t, service.syncRunning)
			assert.Equal(t, tt.expectSync, service.lastSummary != nil)
		})
	}
}

func TestCampaignSyncService_SkipsWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newCampaignSyncService(ctrl, lock.NewLocalLocker())
	service.syncRunning = true

	service.syncAllIntegrations(context.Background())
	service.TriggerManualSync()

	assert.Nil(t, service.lastSummary)
}

func TestCampaignSyncService_ProviderConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := config.CampaignSync{
		MetaCronSchedule:   "0 */6 * * *",
		MetaEnabled:        false,
		GoogleCronSchedule: "30 */6 * * *",
		GoogleEnabled:      true,
	}

	google := NewCampaignSyncService(domain.ProviderGoogle, nil, nil, lock.NewLocalLocker(), cfg)
	assert.Equal(t, "30 */6 * * *", google.config.CronSchedule)
	assert.True(t, google.config.SyncEnabled)
	assert.Equal(t, "google_campaigns", google.lockKey())

	meta := NewCampaignSyncService(domain.ProviderMeta, nil, nil, lock.NewLocalLocker(), cfg)
	require.NoError(t, meta.Start(context.Background()), "desabilitado não agenda nada")
}

func TestCampaignSyncService_StartRejectsInvalidCron(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewCampaignSyncService(domain.ProviderMeta, nil, nil, lock.NewLocalLocker(), config.CampaignSync{
		MetaCronSchedule: "not a cron",
		MetaEnabled:      true,
	})

	err := service.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta_campaigns")
}

func TestCampaignSyncService_ManualTriggerUsesStartContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.WithValue(context.Background(), contextKey{}, "app")
	done := make(chan struct{})

	integrationRepo := mocks.NewMockIntegrationRepository(ctrl)
	integrationRepo.EXPECT().ListActiveByProvider(gomock.Any(), domain.ProviderGoogle).
		DoAndReturn(func(ctx context.Context, _ domain.Provider) ([]*domain.Integration, error) {
			assert.Equal(t, "app", ctx.Value(contextKey{}))
			close(done)
			return nil, nil
		})

	service := NewCampaignSyncService(domain.ProviderGoogle, integrationRepo, syncmocks.NewMockSynchronizer(ctrl), lock.NewLocalLocker(), config.CampaignSync{
		GoogleCronSchedule: "30 */6 * * *",
	})
	require.NoError(t, service.Start(ctx))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, service.Start(ctx))
	}()
	go func() {
		defer wg.Done()
		service.TriggerManualSync()
	}()
	wg.Wait()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("campaign sync was not triggered")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)
}
