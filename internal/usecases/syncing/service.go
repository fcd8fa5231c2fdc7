package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/tokenvault"
	"github.com/vfg2006/budget-monitor-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

type Repositories struct {
	Integrations repository.IntegrationRepository
	AdAccounts   repository.AdAccountRepository
	Campaigns    repository.CampaignRepository
	AdGroups     repository.AdGroupRepository
	Metrics      repository.MetricRepository
	SyncLogs     repository.SyncLogRepository
}

type Service struct {
	repos   Repositories
	tokens  tokenvault.TokenAccessor
	sources map[domain.Provider]ProviderSource
	cfg     config.CampaignSync
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewService(repos Repositories, tokens tokenvault.TokenAccessor, cfg config.CampaignSync, sources ...ProviderSource) *Service {
	byProvider := make(map[domain.Provider]ProviderSource, len(sources))
	for _, source := range sources {
		byProvider[source.Provider()] = source
	}

	if cfg.BatchSize < 1 {
		cfg.BatchSize = 3
	}
	if cfg.LookbackDays < 1 {
		cfg.LookbackDays = 1
	}

	return &Service{
		repos:   repos,
		tokens:  tokens,
		sources: byProvider,
		cfg:     cfg,
		now:     time.Now,
		sleep:   sleepContext,
	}
}

// WithClock troca o relógio usado para calcular a janela de métricas
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SyncIntegration sincroniza contas, campanhas, métricas e grupos de anúncios de uma integração.
// Falhas em campanhas individuais são contadas em Errors e não interrompem a execução.
func (s *Service) SyncIntegration(ctx context.Context, req SyncRequest) (*SyncResult, error) {
	integration, err := s.repos.Integrations.GetByID(ctx, req.IntegrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load integration: %w", err)
	}

	// Integração de outro usuário responde como inexistente
	if integration == nil || (req.Caller != nil && !req.Caller.CanAccess(integration.UserID)) {
		return nil, ErrIntegrationNotFound
	}

	if req.Provider != "" && req.Provider != integration.Provider {
		return nil, ErrProviderMismatch
	}

	if integration.NeedsReauthorization() {
		return nil, ErrIntegrationInactive
	}

	source, ok := s.sources[integration.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, integration.Provider)
	}

	syncLog, err := s.repos.SyncLogs.Start(ctx, &integration.ID, domain.SyncTypeForProvider(integration.Provider))
	if err != nil {
		return nil, fmt.Errorf("failed to start sync log: %w", err)
	}

	startTime := time.Now()
	logger := logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"provider":       integration.Provider,
		"sync_log_id":    syncLog.ID,
	})
	logger.Info("sync: starting campaign synchronization")

	result := &SyncResult{}
	runErr := s.run(ctx, integration, source, req.AccountID, result)

	s.finish(ctx, syncLog, result, runErr)

	duration := time.Since(startTime)
	metrics.JobDuration.WithLabelValues(domain.SyncTypeForProvider(integration.Provider)).Observe(duration.Seconds())
	s.recordMetrics(integration.Provider, result, runErr)

	if runErr != nil {
		logger.WithError(runErr).WithField("duration", duration.String()).Error("sync: campaign synchronization failed")
		return nil, runErr
	}

	logger.WithFields(logrus.Fields{
		"accounts":  result.AccountsSynced,
		"campaigns": result.CampaignsSynced,
		"metrics":   result.MetricsSynced,
		"errors":    result.Errors,
		"duration":  duration.String(),
	}).Info("sync: campaign synchronization completed")

	return result, nil
}

func (s *Service) run(ctx context.Context, integration *domain.Integration, source ProviderSource, accountFilter string, result *SyncResult) error {
	token, err := s.tokens.GetValidAccessToken(ctx, integration.ID)
	if err != nil {
		if tokenvault.NeedsReauthorization(err) {
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return fmt.Errorf("failed to obtain access token: %w", err)
	}

	accounts, err := s.syncAccounts(ctx, integration, source, token, accountFilter, result)
	if err != nil {
		return err
	}

	dateRange := domain.LastDays(s.now(), s.cfg.LookbackDays)

	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.syncAccountCampaigns(ctx, integration, source, token, account, dateRange, result); err != nil {
			return err
		}
	}

	return nil
}

// syncAccounts grava as contas listadas pelo provedor. Em uma sincronização completa,
// contas armazenadas que não aparecem mais são desativadas.
func (s *Service) syncAccounts(
	ctx context.Context,
	integration *domain.Integration,
	source ProviderSource,
	token string,
	accountFilter string,
	result *SyncResult,
) ([]*domain.AdAccount, error) {
	listed, err := source.ListAdAccounts(ctx, token)
	if err != nil {
		return nil, s.providerFailure(ctx, integration, "list ad accounts", err)
	}

	active := make([]*domain.AdAccount, 0, len(listed))
	seen := make(map[string]struct{}, len(listed))

	for _, account := range listed {
		if accountFilter != "" && account.AccountID != accountFilter {
			continue
		}

		account.IntegrationID = integration.ID
		id, err := s.repos.AdAccounts.Upsert(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert ad account %s: %w", account.AccountID, err)
		}

		account.ID = id
		seen[account.AccountID] = struct{}{}
		result.AccountsSynced++

		if account.IsActive {
			active = append(active, account)
		}
	}

	if accountFilter != "" {
		if len(seen) == 0 {
			return nil, ErrAccountNotFound
		}
		return active, nil
	}

	stored, err := s.repos.AdAccounts.ListByIntegration(ctx, integration.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored ad accounts: %w", err)
	}

	missing := make([]string, 0)
	for _, account := range stored {
		if _, ok := seen[account.AccountID]; !ok && account.IsActive {
			missing = append(missing, account.ID)
		}
	}

	if len(missing) > 0 {
		deactivated, err := s.repos.AdAccounts.Deactivate(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to deactivate missing ad accounts: %w", err)
		}
		result.AccountsDeactivated += int(deactivated)
	}

	return active, nil
}

func (s *Service) syncAccountCampaigns(
	ctx context.Context,
	integration *domain.Integration,
	source ProviderSource,
	token string,
	account *domain.AdAccount,
	dateRange domain.DateRange,
	result *SyncResult,
) error {
	logger := logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"account_id":     account.AccountID,
	})

	campaigns, err := source.ListCampaigns(ctx, token, account.AccountID)
	if err != nil {
		switch {
		case domain.IsAuthorizationError(err):
			return s.providerFailure(ctx, integration, "list campaigns", err)
		case domain.IsAccessRevoked(err), domain.IsResourceGone(err):
			logger.WithError(err).Warn("sync: account no longer accessible, deactivating")
			deactivated, dErr := s.repos.AdAccounts.Deactivate(ctx, []string{account.ID})
			if dErr != nil {
				logger.WithError(dErr).Error("sync: failed to deactivate account")
				result.Errors++
				return nil
			}
			result.AccountsDeactivated += int(deactivated)
		default:
			logger.WithError(err).Error("sync: failed to list campaigns")
			result.Errors++
		}
		return nil
	}

	enabled := make([]*domain.Campaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		campaign.AdAccountID = account.ID

		stored, err := s.repos.Campaigns.Upsert(ctx, campaign)
		if err != nil {
			logger.WithError(err).WithField("campaign_id", campaign.CampaignID).Error("sync: failed to upsert campaign")
			result.Errors++
			continue
		}

		result.CampaignsSynced++
		if stored.SyncEnabled {
			enabled = append(enabled, stored)
		}
	}

	return s.processCampaigns(ctx, integration, source, token, account, enabled, dateRange, result)
}

// processCampaigns processa as campanhas em lotes concorrentes de BatchSize com BatchDelay entre lotes
func (s *Service) processCampaigns(
	ctx context.Context,
	integration *domain.Integration,
	source ProviderSource,
	token string,
	account *domain.AdAccount,
	campaigns []*domain.Campaign,
	dateRange domain.DateRange,
	result *SyncResult,
) error {
	for start := 0; start < len(campaigns); start += s.cfg.BatchSize {
		if start > 0 {
			if err := s.sleep(ctx, s.cfg.BatchDelay); err != nil {
				return err
			}
		}

		end := min(start+s.cfg.BatchSize, len(campaigns))
		batch := campaigns[start:end]
		outcomes := make([]campaignOutcome, len(batch))

		group, groupCtx := errgroup.WithContext(ctx)
		for i, campaign := range batch {
			group.Go(func() error {
				outcomes[i] = s.syncCampaign(groupCtx, source, token, account, campaign, dateRange)
				if domain.IsAuthorizationError(outcomes[i].err) {
					return outcomes[i].err
				}
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return s.providerFailure(ctx, integration, "sync campaign", err)
		}

		for _, outcome := range outcomes {
			result.MetricsSynced += outcome.metrics
			result.AdGroupsSynced += outcome.adGroups
			if outcome.disabled {
				result.CampaignsDisabled++
			}
			if outcome.err != nil {
				result.Errors++
			}
		}
	}

	return nil
}

func (s *Service) syncCampaign(
	ctx context.Context,
	source ProviderSource,
	token string,
	account *domain.AdAccount,
	campaign *domain.Campaign,
	dateRange domain.DateRange,
) campaignOutcome {
	logger := logrus.WithFields(logrus.Fields{
		"account_id":  account.AccountID,
		"campaign_id": campaign.CampaignID,
	})

	rows, err := source.ListCampaignMetrics(ctx, token, account.AccountID, campaign.CampaignID, dateRange)
	if err != nil {
		if domain.IsResourceGone(err) {
			logger.Warn("sync: campaign no longer exists at provider, disabling sync")
			if dErr := s.repos.Campaigns.DisableSync(ctx, campaign.ID); dErr != nil {
				logger.WithError(dErr).Error("sync: failed to disable campaign sync")
				return campaignOutcome{err: dErr}
			}
			return campaignOutcome{disabled: true}
		}

		if !domain.IsAuthorizationError(err) {
			logger.WithError(err).Error("sync: failed to fetch campaign metrics")
		}
		return campaignOutcome{err: err}
	}

	for _, row := range rows {
		row.CampaignID = campaign.ID
	}

	if err := s.repos.Metrics.UpsertBatch(ctx, rows); err != nil {
		logger.WithError(err).Error("sync: failed to upsert campaign metrics")
		return campaignOutcome{err: err}
	}

	outcome := campaignOutcome{metrics: len(rows)}

	if !s.cfg.IncludeAdGroups {
		return outcome
	}

	groups, err := source.ListAdGroups(ctx, token, account.AccountID, campaign.CampaignID)
	if err != nil {
		if !domain.IsAuthorizationError(err) {
			logger.WithError(err).Error("sync: failed to fetch ad groups")
		}
		outcome.err = err
		return outcome
	}

	for _, group := range groups {
		group.CampaignID = campaign.ID
	}

	if err := s.repos.AdGroups.UpsertBatch(ctx, groups); err != nil {
		logger.WithError(err).Error("sync: failed to upsert ad groups")
		outcome.err = err
		return outcome
	}

	outcome.adGroups = len(groups)
	return outcome
}

// providerFailure marca a integração como expirada em erros de autorização e aborta a execução
func (s *Service) providerFailure(ctx context.Context, integration *domain.Integration, operation string, err error) error {
	if !domain.IsAuthorizationError(err) {
		return fmt.Errorf("failed to %s: %w", operation, err)
	}

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"provider":       integration.Provider,
	}).WithError(err).Warn("sync: provider rejected the token, marking integration as expired")

	if uErr := s.repos.Integrations.UpdateStatus(ctx, integration.ID, domain.IntegrationStatusExpired); uErr != nil {
		logrus.WithError(uErr).WithField("integration_id", integration.ID).Error("sync: failed to mark integration as expired")
	}

	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

func (s *Service) finish(ctx context.Context, syncLog *domain.SyncLog, result *SyncResult, runErr error) {
	syncLog.RecordsProcessed = result.RecordsProcessed()
	syncLog.ErrorsCount = result.Errors
	syncLog.Details = result.Details()
	syncLog.Status = domain.SyncStatusSuccess

	if runErr != nil {
		message := runErr.Error()
		syncLog.Status = domain.SyncStatusError
		syncLog.ErrorMessage = &message
	}

	if err := s.repos.SyncLogs.Finish(context.WithoutCancel(ctx), syncLog); err != nil {
		logrus.WithError(err).WithField("sync_log_id", syncLog.ID).Error("sync: failed to complete sync log")
	}
}

func (s *Service) recordMetrics(provider domain.Provider, result *SyncResult, runErr error) {
	status := string(domain.SyncStatusSuccess)
	if runErr != nil {
		status = string(domain.SyncStatusError)
	}

	metrics.SyncRuns.WithLabelValues(string(provider), status).Inc()
	metrics.SyncedRecords.WithLabelValues(string(provider), "account").Add(float64(result.AccountsSynced))
	metrics.SyncedRecords.WithLabelValues(string(provider), "campaign").Add(float64(result.CampaignsSynced))
	metrics.SyncedRecords.WithLabelValues(string(provider), "metric").Add(float64(result.MetricsSynced))
	metrics.SyncedRecords.WithLabelValues(string(provider), "ad_group").Add(float64(result.AdGroupsSynced))
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
