package handler

import (
	"net/http"

	"github.com/vfg2006/budget-monitor-api/internal/usecases/monitoring"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
	"github.com/vfg2006/budget-monitor-api/pkg/log"
)

// MonitorBudgets executa uma verificação de orçamento síncrona e devolve os contadores da execução
func MonitorBudgets(monitor monitoring.Monitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("budgets: manual monitor run requested")

		result, err := monitor.MonitorBudgets(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("budgets: monitor run failed")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao verificar orçamentos", nil)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
