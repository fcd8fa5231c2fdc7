package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/integrating"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
	"github.com/vfg2006/budget-monitor-api/pkg/middleware"
)

func ListIntegrations(service integrating.IntegrationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		integrations, err := service.ListIntegrations(r.Context(), claims.UserID())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeList(w, integrations)
	})
}

// RefreshIntegration força a passagem pelo cofre de tokens e devolve apenas o estado resultante
func RefreshIntegration(service integrating.IntegrationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := service.RefreshIntegration(r.Context(), claims, id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func RemoveIntegration(service integrating.IntegrationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.RemoveIntegration(r.Context(), claims, id); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, nil)
	})
}

func ListSyncLogs(service integrating.IntegrationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		limit := integrating.DefaultSyncLogLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		logs, err := service.ListSyncLogs(r.Context(), claims, id, limit)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeList(w, logs)
	})
}

// ListCampaignAlerts aceita ?active=true para devolver apenas alertas ativos
func ListCampaignAlerts(service integrating.IntegrationManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		activeOnly := false
		if raw := r.URL.Query().Get("active"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "active deve ser true ou false", nil)
				return
			}
			activeOnly = parsed
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		alerts, err := service.ListCampaignAlerts(r.Context(), claims, campaignID, activeOnly)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeList(w, alerts)
	})
}
