package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/budget-monitor-api/internal/api/handler/router"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/integrating"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/monitoring"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/syncing"
	"github.com/vfg2006/budget-monitor-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Budgets(monitor monitoring.Monitor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/budgets/monitor",
			Method:      http.MethodPost,
			Handler:     MonitorBudgets(monitor),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sync(synchronizer syncing.Synchronizer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/:provider",
			Method:      http.MethodPost,
			Handler:     SyncProvider(synchronizer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Integrations(service integrating.IntegrationManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/integrations",
			Method:      http.MethodGet,
			Handler:     ListIntegrations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/:id/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshIntegration(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/:id",
			Method:      http.MethodDelete,
			Handler:     RemoveIntegration(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/:id/sync-logs",
			Method:      http.MethodGet,
			Handler:     ListSyncLogs(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CampaignAlerts(service integrating.IntegrationManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/:id/alerts",
			Method:      http.MethodGet,
			Handler:     ListCampaignAlerts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceRoleOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceRoleOnly()},
		},
	}
}
