package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/metrics"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	campaigns  repository.CampaignRepository
	metrics    repository.MetricRepository
	alerts     repository.CampaignAlertRepository
	syncLogs   repository.SyncLogRepository
	transactor postgres.Transactor
	workers    int
	now        func() time.Time
}

func NewService(
	campaigns repository.CampaignRepository,
	metricRepo repository.MetricRepository,
	alerts repository.CampaignAlertRepository,
	syncLogs repository.SyncLogRepository,
	transactor postgres.Transactor,
	cfg config.BudgetMonitor,
) *Service {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Service{
		campaigns:  campaigns,
		metrics:    metricRepo,
		alerts:     alerts,
		syncLogs:   syncLogs,
		transactor: transactor,
		workers:    workers,
		now:        time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// MonitorBudgets compara o gasto acumulado de cada campanha ativa com o orçamento e
// registra um alerta por limite atingido (80, 90 e 100%). Alertas já ativos têm o
// current_amount atualizado e nunca são duplicados.
func (s *Service) MonitorBudgets(ctx context.Context) (*MonitorResult, error) {
	syncLog, err := s.syncLogs.Start(ctx, nil, domain.SyncTypeBudgetMonitor)
	if err != nil {
		return nil, fmt.Errorf("failed to start sync log: %w", err)
	}

	startTime := time.Now()
	logger := logrus.WithField("sync_log_id", syncLog.ID)
	logger.Info("monitor: starting budget check")

	result := &MonitorResult{}
	runErr := s.run(ctx, result)

	s.finish(ctx, syncLog, result, runErr)

	duration := time.Since(startTime)
	metrics.JobDuration.WithLabelValues(domain.SyncTypeBudgetMonitor).Observe(duration.Seconds())

	if runErr != nil {
		metrics.BudgetMonitorRuns.WithLabelValues(string(domain.SyncStatusError)).Inc()
		logger.WithError(runErr).Error("monitor: budget check failed")
		return nil, runErr
	}

	metrics.BudgetMonitorRuns.WithLabelValues(string(domain.SyncStatusSuccess)).Inc()
	metrics.BudgetAlerts.WithLabelValues("created").Add(float64(result.AlertsCreated))
	metrics.BudgetAlerts.WithLabelValues("updated").Add(float64(result.AlertsUpdated))

	logger.WithFields(logrus.Fields{
		"campaigns_checked": result.CampaignsChecked,
		"campaigns_skipped": result.CampaignsSkipped,
		"campaigns_failed":  result.CampaignsFailed,
		"alerts_created":    result.AlertsCreated,
		"alerts_updated":    result.AlertsUpdated,
		"duration":          duration.String(),
	}).Info("monitor: budget check completed")

	return result, nil
}

func (s *Service) run(ctx context.Context, result *MonitorResult) error {
	campaigns, err := s.campaigns.ListMonitorable(ctx)
	if err != nil {
		return fmt.Errorf("failed to list monitorable campaigns: %w", err)
	}

	result.CampaignsChecked = len(campaigns)
	if len(campaigns) == 0 {
		return nil
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for _, campaign := range campaigns {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			check, err := s.checkCampaignInTransaction(groupCtx, campaign)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				logrus.WithError(err).WithField("campaign_id", campaign.ID).Error("monitor: failed to check campaign budget")
				result.CampaignsFailed++
				return nil
			}

			if check.skipped {
				result.CampaignsSkipped++
			}
			result.AlertsCreated += check.created
			result.AlertsUpdated += check.updated
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

func (s *Service) checkCampaignInTransaction(ctx context.Context, campaign *domain.Campaign) (campaignCheck, error) {
	var check campaignCheck
	err := s.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		check, err = s.checkCampaign(txCtx, campaign)
		return err
	})
	if err != nil {
		return campaignCheck{}, err
	}
	return check, nil
}

func (s *Service) checkCampaign(ctx context.Context, campaign *domain.Campaign) (campaignCheck, error) {
	budget := campaign.EffectiveBudget()
	if budget <= 0 {
		return campaignCheck{skipped: true}, nil
	}

	spend, err := s.metrics.SumSpendByCampaign(ctx, campaign.ID)
	if err != nil {
		return campaignCheck{}, fmt.Errorf("failed to sum spend: %w", err)
	}

	check := campaignCheck{}

	updated, err := s.alerts.RefreshActiveAmounts(ctx, campaign.ID, spend)
	if err != nil {
		return campaignCheck{}, fmt.Errorf("failed to refresh active alerts: %w", err)
	}
	check.updated = int(updated)

	percentage := spend / budget * 100
	triggeredAt := s.now().UTC()

	for _, threshold := range domain.BudgetThresholds {
		if percentage < float64(threshold) {
			break
		}

		created, err := s.alerts.CreateIfAbsent(ctx, &domain.CampaignAlert{
			CampaignID:      campaign.ID,
			AlertType:       domain.AlertTypeForThreshold(threshold),
			ThresholdAmount: utils.RoundWithTwoDecimalPlace(budget * float64(threshold) / 100),
			CurrentAmount:   spend,
			IsActive:        true,
			TriggeredAt:     triggeredAt,
		})
		if err != nil {
			return campaignCheck{}, fmt.Errorf("failed to create %d%% alert: %w", threshold, err)
		}

		if created {
			check.created++
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"threshold":   threshold,
				"spend":       spend,
				"budget":      budget,
			}).Info("monitor: budget alert triggered")
		}
	}

	return check, nil
}

func (s *Service) finish(ctx context.Context, syncLog *domain.SyncLog, result *MonitorResult, runErr error) {
	syncLog.RecordsProcessed = result.CampaignsChecked
	syncLog.ErrorsCount = result.CampaignsFailed
	syncLog.Details = result.Details()
	syncLog.Status = domain.SyncStatusSuccess

	if runErr != nil {
		message := runErr.Error()
		syncLog.Status = domain.SyncStatusError
		syncLog.ErrorMessage = &message
	}

	if err := s.syncLogs.Finish(context.WithoutCancel(ctx), syncLog); err != nil {
		logrus.WithError(err).WithField("sync_log_id", syncLog.ID).Error("monitor: failed to complete sync log")
	}
}
