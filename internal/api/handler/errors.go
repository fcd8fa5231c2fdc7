package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/syncing"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/tokenvault"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
	"github.com/vfg2006/budget-monitor-api/pkg/log"
)

// writeError traduz erros dos casos de uso para a resposta padronizada da API
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := classify(err)

	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"path": r.URL.Path,
		"code": apiErr.Code,
	}).WithError(err)

	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logger.Error("handler: request failed")
	} else {
		logger.Warn("handler: request rejected")
	}

	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}

func classify(err error) apiErrors.APIError {
	var missingConfig *config.MissingConfigError
	if errors.As(err, &missingConfig) {
		return apiErrors.APIError{
			Code:    apiErrors.ErrMissingConfig,
			Message: "Configuração do provedor incompleta",
			Details: map[string]any{"missing": missingConfig.Keys},
		}
	}

	switch {
	case errors.Is(err, tokenvault.ErrMissingRefreshToken):
		return apiErrors.APIError{
			Code:    apiErrors.ErrOfflineAccessRequired,
			Message: "Conecte a conta novamente concedendo acesso offline",
		}
	case errors.Is(err, syncing.ErrIntegrationNotFound), errors.Is(err, syncing.ErrAccountNotFound):
		return apiErrors.FromError(err, apiErrors.ErrNotFound)
	case errors.Is(err, syncing.ErrProviderMismatch), errors.Is(err, syncing.ErrUnsupportedProvider):
		return apiErrors.FromError(err, apiErrors.ErrInvalidRequest)
	case errors.Is(err, syncing.ErrIntegrationInactive), errors.Is(err, syncing.ErrSessionExpired):
		return apiErrors.FromError(err, apiErrors.ErrReauthorizationRequired)
	}

	var coded apiErrors.CodedError
	if errors.As(err, &coded) {
		return apiErrors.FromError(coded, coded.ErrorCode())
	}

	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		switch providerErr.Kind {
		case domain.ProviderErrorAuthorization:
			return apiErrors.FromError(err, apiErrors.ErrReauthorizationRequired)
		case domain.ProviderErrorAccessRevoked:
			return apiErrors.FromError(err, apiErrors.ErrProviderAccessRevoked)
		default:
			return apiErrors.FromError(err, apiErrors.ErrProviderFailure)
		}
	}

	return apiErrors.APIError{
		Code:    apiErrors.ErrInternalServer,
		Message: "Erro interno do servidor",
	}
}
