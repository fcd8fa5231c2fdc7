package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google"
	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta"
	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/api"
	"github.com/vfg2006/budget-monitor-api/internal/api/handler"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/scheduler"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/integrating"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/monitoring"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/syncing"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/tokenvault"
	"github.com/vfg2006/budget-monitor-api/pkg/lock"
	"github.com/vfg2006/budget-monitor-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	integrationRepo := repository.NewIntegrationRepository(pgConn)
	adAccountRepo := repository.NewAdAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adGroupRepo := repository.NewAdGroupRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)
	alertRepo := repository.NewCampaignAlertRepository(pgConn)
	syncLogRepo := repository.NewSyncLogRepository(pgConn)

	metaClient := metaclient.NewClient(cfg.Meta)
	googleClient := googleclient.NewClient(cfg.Google)

	tokens := tokenvault.NewAccessor(
		integrationRepo,
		tokenvault.NewMetaRenewer(cfg.Meta, metaClient, integrationRepo),
		tokenvault.NewGoogleRenewer(cfg.Google, googleClient, integrationRepo),
	)

	synchronizer := syncing.NewService(
		syncing.Repositories{
			Integrations: integrationRepo,
			AdAccounts:   adAccountRepo,
			Campaigns:    campaignRepo,
			AdGroups:     adGroupRepo,
			Metrics:      metricRepo,
			SyncLogs:     syncLogRepo,
		},
		tokens,
		cfg.CampaignSync,
		meta.New(metaClient),
		google.New(googleClient),
	)

	monitor := monitoring.NewService(campaignRepo, metricRepo, alertRepo, syncLogRepo, pgConn, cfg.BudgetMonitor)
	integrations := integrating.NewService(integrationRepo, campaignRepo, alertRepo, syncLogRepo, tokens)
	authenticator := authenticating.NewService(cfg.Auth)

	locker := jobLocker(ctx, cfg.Redis)

	metaSyncService := scheduler.NewCampaignSyncService(domain.ProviderMeta, integrationRepo, synchronizer, locker, cfg.CampaignSync)
	googleSyncService := scheduler.NewCampaignSyncService(domain.ProviderGoogle, integrationRepo, synchronizer, locker, cfg.CampaignSync)
	budgetMonitorService := scheduler.NewBudgetMonitorService(monitor, locker, cfg.BudgetMonitor)

	if err := metaSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("scheduler: failed to start meta campaign sync")
	}

	if err := googleSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("scheduler: failed to start google campaign sync")
	}

	if err := budgetMonitorService.Start(ctx); err != nil {
		logrus.WithError(err).Error("scheduler: failed to start budget monitor")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Monitor:       monitor,
		Synchronizer:  synchronizer,
		Integrations:  integrations,
		CronJobs: handler.CronJobServices{
			MetaSyncService:      metaSyncService,
			GoogleSyncService:    googleSyncService,
			BudgetMonitorService: budgetMonitorService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("database: failed to connect to postgres")
	}

	logrus.Info("database: postgres connection established")
	return conn
}

// jobLocker usa o Redis quando configurado; sem ele o lock vale apenas para este processo
func jobLocker(ctx context.Context, cfg config.Redis) lock.Locker {
	if cfg.URL == "" {
		logrus.Info("lock: REDIS_URL not set, using in-process job lock")
		return lock.NewLocalLocker()
	}

	client, err := lock.NewRedisClient(ctx, cfg.URL)
	if err != nil {
		logrus.WithError(err).Warn("lock: redis unavailable, falling back to in-process job lock")
		return lock.NewLocalLocker()
	}

	logrus.Info("lock: using redis for job locks")
	return lock.NewRedisLocker(client, cfg.KeyPrefix)
}
