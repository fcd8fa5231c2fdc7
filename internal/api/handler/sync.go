package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/syncing"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
	"github.com/vfg2006/budget-monitor-api/pkg/log"
	"github.com/vfg2006/budget-monitor-api/pkg/middleware"
)

// SyncProvider sincroniza contas, campanhas e métricas de uma integração do provedor informado na rota
func SyncProvider(synchronizer syncing.Synchronizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		providerParam := httprouter.ParamsFromContext(r.Context()).ByName("provider")
		provider, ok := domain.ParseProvider(providerParam)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Provedor inválido. Valores aceitos: meta, google", nil)
			return
		}

		var req syncing.SyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		req.IntegrationID = strings.TrimSpace(req.IntegrationID)
		req.AccountID = strings.TrimSpace(req.AccountID)
		if req.IntegrationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "integration_id é obrigatório", nil)
			return
		}
		req.Provider = provider
		req.Caller = claims

		log.ForContext(r.Context()).WithFields(log.Fields{
			"provider":       provider,
			"integration_id": req.IntegrationID,
			"account_id":     req.AccountID,
		}).Info("sync: manual synchronization requested")

		result, err := synchronizer.SyncIntegration(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
