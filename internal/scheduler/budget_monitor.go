package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/monitoring"
	"github.com/vfg2006/budget-monitor-api/pkg/lock"
)

// BudgetMonitorService agenda a verificação de orçamento das campanhas
type BudgetMonitorService struct {
	scheduler           *gocron.Scheduler
	config              config.BudgetMonitor
	monitor             monitoring.Monitor
	locker              lock.Locker
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *monitoring.MonitorResult
	lastError           string
}

func NewBudgetMonitorService(monitor monitoring.Monitor, locker lock.Locker, appConfig config.BudgetMonitor) *BudgetMonitorService {
	if appConfig.LockTTL <= 0 {
		appConfig.LockTTL = 10 * time.Minute
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.CronSchedule,
		"workers":       appConfig.Workers,
		"enabled":       appConfig.Enabled,
	}).Info("scheduler: budget monitor configuration loaded")

	return &BudgetMonitorService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    appConfig,
		monitor:   monitor,
		locker:    locker,
		baseCtx:   context.Background(),
	}
}

// Start inicia o agendador
func (s *BudgetMonitorService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.Enabled {
		logrus.Info("scheduler: budget monitor disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: starting budget monitor scheduler")

	return scheduleJob(ctx, s.scheduler, s.config.CronSchedule, domain.SyncTypeBudgetMonitor, func() {
		s.runMonitor(s.runContext())
	})
}

func (s *BudgetMonitorService) runContext() context.Context {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.baseCtx
}

func (s *BudgetMonitorService) runMonitor(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: budget monitor already running, skipping")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	acquired, err := withJobLock(ctx, s.locker, domain.SyncTypeBudgetMonitor, s.config.LockTTL, func() {
		s.check(ctx)
	})
	if err != nil {
		logrus.WithError(err).Error("scheduler: failed to acquire budget monitor lock")
		return
	}
	if !acquired {
		logrus.Info("scheduler: budget monitor running on another instance, skipping")
	}
}

func (s *BudgetMonitorService) check(ctx context.Context) {
	s.syncMutex.Lock()
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	result, err := s.monitor.MonitorBudgets(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return
	}

	s.lastError = ""
	s.lastResult = result
}

// TriggerManualSync inicia manualmente uma verificação de orçamento
func (s *BudgetMonitorService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: budget monitor already running, ignoring manual trigger")
		return
	}
	ctx := context.WithoutCancel(s.baseCtx)
	s.syncMutex.Unlock()

	logrus.Info("scheduler: manual budget monitor triggered")
	go s.runMonitor(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *BudgetMonitorService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"workers":                s.config.Workers,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
		"last_error":             s.lastError,
	}
}
