package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/syncing"
	"github.com/vfg2006/budget-monitor-api/pkg/lock"
)

// CampaignSyncConfig representa a configuração do agendador de um provedor
type CampaignSyncConfig struct {
	Provider     domain.Provider
	CronSchedule string
	SyncEnabled  bool
	RequestDelay time.Duration
	LockTTL      time.Duration
}

// CampaignSyncSummary resume a última execução agendada
type CampaignSyncSummary struct {
	Integrations int `json:"integrations"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`
	Errors       int `json:"errors"`
}

// CampaignSyncService sincroniza periodicamente todas as integrações ativas de um provedor
type CampaignSyncService struct {
	scheduler           *gocron.Scheduler
	config              CampaignSyncConfig
	integrationRepo     repository.IntegrationRepository
	synchronizer        syncing.Synchronizer
	locker              lock.Locker
	baseCtx             context.Context
	sleep               func(ctx context.Context, d time.Duration) error
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *CampaignSyncSummary
}

func NewCampaignSyncService(
	provider domain.Provider,
	integrationRepo repository.IntegrationRepository,
	synchronizer syncing.Synchronizer,
	locker lock.Locker,
	appConfig config.CampaignSync,
) *CampaignSyncService {
	syncConfig := CampaignSyncConfig{
		Provider:     provider,
		RequestDelay: time.Duration(appConfig.RequestDelaySeconds) * time.Second,
		LockTTL:      appConfig.LockTTL,
	}

	switch provider {
	case domain.ProviderMeta:
		syncConfig.CronSchedule = appConfig.MetaCronSchedule
		syncConfig.SyncEnabled = appConfig.MetaEnabled
	case domain.ProviderGoogle:
		syncConfig.CronSchedule = appConfig.GoogleCronSchedule
		syncConfig.SyncEnabled = appConfig.GoogleEnabled
	}

	if syncConfig.LockTTL <= 0 {
		syncConfig.LockTTL = 2 * time.Hour
	}

	logrus.WithFields(logrus.Fields{
		"provider":      provider,
		"cron_schedule": syncConfig.CronSchedule,
		"request_delay": syncConfig.RequestDelay.String(),
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("scheduler: campaign sync configuration loaded")

	return &CampaignSyncService{
		scheduler:       gocron.NewScheduler(time.UTC),
		config:          syncConfig,
		integrationRepo: integrationRepo,
		synchronizer:    synchronizer,
		locker:          locker,
		baseCtx:         context.Background(),
		sleep:           sleepContext,
	}
}

// Start inicia o agendador
func (s *CampaignSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.WithField("provider", s.config.Provider).Info("scheduler: campaign sync disabled by configuration")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"provider": s.config.Provider,
		"cron":     s.config.CronSchedule,
	}).Info("scheduler: starting campaign sync scheduler")

	return scheduleJob(ctx, s.scheduler, s.config.CronSchedule, s.lockKey(), func() {
		s.syncAllIntegrations(s.runContext())
	})
}

func (s *CampaignSyncService) runContext() context.Context {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.baseCtx
}

func (s *CampaignSyncService) lockKey() string {
	return domain.SyncTypeForProvider(s.config.Provider)
}

// syncAllIntegrations sincroniza as integrações ativas do provedor, uma de cada vez
func (s *CampaignSyncService) syncAllIntegrations(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.WithField("provider", s.config.Provider).Info("scheduler: campaign sync already running, skipping")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	acquired, err := withJobLock(ctx, s.locker, s.lockKey(), s.config.LockTTL, func() {
		s.runSync(ctx)
	})
	if err != nil {
		logrus.WithError(err).WithField("provider", s.config.Provider).Error("scheduler: failed to acquire campaign sync lock")
		return
	}
	if !acquired {
		logrus.WithField("provider", s.config.Provider).Info("scheduler: campaign sync running on another instance, skipping")
	}
}

func (s *CampaignSyncService) runSync(ctx context.Context) *CampaignSyncSummary {
	startTime := time.Now()
	s.syncMutex.Lock()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	logger := logrus.WithField("provider", s.config.Provider)
	logger.Info("scheduler: starting campaign sync for active integrations")

	summary := &CampaignSyncSummary{}
	defer func() {
		s.syncMutex.Lock()
		s.lastSyncCompletedAt = time.Now()
		s.lastSummary = summary
		s.syncMutex.Unlock()
	}()

	integrations, err := s.integrationRepo.ListActiveByProvider(ctx, s.config.Provider)
	if err != nil {
		logger.WithError(err).Error("scheduler: failed to list active integrations")
		return summary
	}

	if len(integrations) == 0 {
		logger.Info("scheduler: no active integrations to sync")
		return summary
	}

	summary.Integrations = len(integrations)

	for i, integration := range integrations {
		if i > 0 {
			if err := s.sleep(ctx, s.config.RequestDelay); err != nil {
				logger.WithError(err).Warn("scheduler: campaign sync interrupted")
				return summary
			}
		}

		result, err := s.synchronizer.SyncIntegration(ctx, syncing.SyncRequest{
			IntegrationID: integration.ID,
			Provider:      s.config.Provider,
		})
		if err != nil {
			summary.Failed++
			logger.WithError(err).WithField("integration_id", integration.ID).Error("scheduler: integration sync failed")
			continue
		}

		summary.Succeeded++
		summary.Errors += result.Errors
	}

	logger.WithFields(logrus.Fields{
		"integrations": summary.Integrations,
		"succeeded":    summary.Succeeded,
		"failed":       summary.Failed,
		"duration":     time.Since(startTime).String(),
	}).Info("scheduler: campaign sync completed")

	return summary
}

// TriggerManualSync inicia manualmente uma sincronização
func (s *CampaignSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.WithField("provider", s.config.Provider).Info("scheduler: campaign sync already running, ignoring manual trigger")
		return
	}
	ctx := context.WithoutCancel(s.baseCtx)
	s.syncMutex.Unlock()

	logrus.WithField("provider", s.config.Provider).Info("scheduler: manual campaign sync triggered")
	go s.syncAllIntegrations(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *CampaignSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"provider":               s.config.Provider,
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_request_delay":     s.config.RequestDelay.String(),
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_summary":      s.lastSummary,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
