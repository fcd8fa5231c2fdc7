package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
	"github.com/vfg2006/budget-monitor-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMeta    = "meta"
	CronJobTypeGoogle  = "google"
	CronJobTypeMonitor = "monitor"
	CronJobTypeAll     = "all"
)

// CronJob é o contrato comum dos serviços agendados em internal/scheduler
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	MetaSyncService      CronJob
	GoogleSyncService    CronJob
	BudgetMonitorService CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := map[string]CronJob{}
	if s.MetaSyncService != nil {
		jobs[CronJobTypeMeta] = s.MetaSyncService
	}
	if s.GoogleSyncService != nil {
		jobs[CronJobTypeGoogle] = s.GoogleSyncService
	}
	if s.BudgetMonitorService != nil {
		jobs[CronJobTypeMonitor] = s.BudgetMonitorService
	}
	return jobs
}

// RunCronJob dispara manualmente uma cron job; a execução segue em segundo plano
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.byType()

		switch cronType {
		case CronJobTypeMeta, CronJobTypeGoogle, CronJobTypeMonitor:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrServiceUnavailable, "Serviço agendado não disponível", map[string]any{"type": cronType})
				return
			}
			job.TriggerManualSync()

		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: meta, google, monitor, all", nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("cron: manual run triggered")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, map[string]any{"jobs": status})
	})
}
