package integrating

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/internal/usecases/tokenvault"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
)

const DefaultSyncLogLimit = 20

type IntegrationManager interface {
	ListIntegrations(ctx context.Context, userID string) ([]*domain.IntegrationResponse, error)
	RefreshIntegration(ctx context.Context, claims *domain.Claims, integrationID string) (*RefreshResult, error)
	RemoveIntegration(ctx context.Context, claims *domain.Claims, integrationID string) error
	ListCampaignAlerts(ctx context.Context, claims *domain.Claims, campaignID string, activeOnly bool) ([]*domain.CampaignAlert, error)
	ListSyncLogs(ctx context.Context, claims *domain.Claims, integrationID string, limit int) ([]*domain.SyncLog, error)
}

// RefreshResult nunca carrega o token, apenas o estado resultante
type RefreshResult struct {
	Status    domain.IntegrationStatus `json:"status"`
	ExpiresAt *time.Time               `json:"expires_at"`
}

type Service struct {
	integrationRepo repository.IntegrationRepository
	campaignRepo    repository.CampaignRepository
	alertRepo       repository.CampaignAlertRepository
	syncLogRepo     repository.SyncLogRepository
	tokens          tokenvault.TokenAccessor
}

func NewService(
	integrationRepo repository.IntegrationRepository,
	campaignRepo repository.CampaignRepository,
	alertRepo repository.CampaignAlertRepository,
	syncLogRepo repository.SyncLogRepository,
	tokens tokenvault.TokenAccessor,
) IntegrationManager {
	return &Service{
		integrationRepo: integrationRepo,
		campaignRepo:    campaignRepo,
		alertRepo:       alertRepo,
		syncLogRepo:     syncLogRepo,
		tokens:          tokens,
	}
}

func (s *Service) ListIntegrations(ctx context.Context, userID string) ([]*domain.IntegrationResponse, error) {
	integrations, err := s.integrationRepo.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("integrations: failed to list integrations")
		return nil, NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar integrações")
	}

	response := make([]*domain.IntegrationResponse, 0, len(integrations))
	for _, integration := range integrations {
		response = append(response, integration.ToResponse())
	}

	return response, nil
}

// RefreshIntegration passa pelo cofre de tokens, que renova o token quando ele está perto de expirar
func (s *Service) RefreshIntegration(ctx context.Context, claims *domain.Claims, integrationID string) (*RefreshResult, error) {
	if _, err := s.ownedIntegration(ctx, claims, integrationID); err != nil {
		return nil, err
	}

	if _, err := s.tokens.GetValidAccessToken(ctx, integrationID); err != nil {
		logger := logrus.WithField("integration_id", integrationID).WithError(err)

		var missingConfig *config.MissingConfigError
		if errors.As(err, &missingConfig) {
			logger.Error("integrations: provider credentials are not configured")
			return nil, NewIntegrationErrorWithID(ErrTokenRefreshFailed, apiErrors.ErrMissingConfig, integrationID, missingConfig.Error())
		}

		switch {
		case errors.Is(err, tokenvault.ErrMissingRefreshToken):
			logger.Warn("integrations: refresh token missing, offline access must be granted again")
			return nil, NewIntegrationErrorWithID(ErrReauthorizationRequired, apiErrors.ErrOfflineAccessRequired, integrationID, "Conecte a conta novamente concedendo acesso offline")
		case tokenvault.NeedsReauthorization(err):
			logger.Warn("integrations: refresh requires re-authorization")
			return nil, NewIntegrationErrorWithID(ErrReauthorizationRequired, apiErrors.ErrReauthorizationRequired, integrationID, err.Error())
		case errors.Is(err, tokenvault.ErrIntegrationNotFound):
			return nil, NewIntegrationErrorWithID(ErrIntegrationNotFound, apiErrors.ErrNotFound, integrationID, "")
		}

		logger.Error("integrations: failed to refresh token")
		return nil, NewIntegrationErrorWithID(ErrTokenRefreshFailed, apiErrors.ErrProviderFailure, integrationID, err.Error())
	}

	refreshed, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil || refreshed == nil {
		return nil, NewIntegrationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, integrationID, "Falha ao recarregar integração")
	}

	return &RefreshResult{
		Status:    refreshed.Status,
		ExpiresAt: refreshed.ExpiresAt,
	}, nil
}

// RemoveIntegration apaga a integração; contas, campanhas, métricas e alertas saem em cascata
func (s *Service) RemoveIntegration(ctx context.Context, claims *domain.Claims, integrationID string) error {
	if _, err := s.ownedIntegration(ctx, claims, integrationID); err != nil {
		return err
	}

	if err := s.integrationRepo.Delete(ctx, integrationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewIntegrationErrorWithID(ErrIntegrationNotFound, apiErrors.ErrNotFound, integrationID, "")
		}
		logrus.WithError(err).WithField("integration_id", integrationID).Error("integrations: failed to delete integration")
		return NewIntegrationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, integrationID, "Falha ao remover integração")
	}

	logrus.WithField("integration_id", integrationID).Info("integrations: integration removed")
	return nil
}

func (s *Service) ListCampaignAlerts(ctx context.Context, claims *domain.Claims, campaignID string, activeOnly bool) ([]*domain.CampaignAlert, error) {
	if campaignID == "" {
		return nil, NewIntegrationError(ErrCampaignIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	if !claims.IsServiceRole() {
		ownerID, err := s.campaignRepo.GetOwnerUserID(ctx, campaignID)
		if err != nil {
			return nil, NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar campanha")
		}
		if ownerID == "" || !claims.CanAccess(ownerID) {
			return nil, NewIntegrationError(ErrCampaignNotFound, apiErrors.ErrNotFound, "")
		}
	}

	alerts, err := s.alertRepo.ListByCampaign(ctx, campaignID, activeOnly)
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Error("integrations: failed to list campaign alerts")
		return nil, NewIntegrationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar alertas")
	}

	return alerts, nil
}

func (s *Service) ListSyncLogs(ctx context.Context, claims *domain.Claims, integrationID string, limit int) ([]*domain.SyncLog, error) {
	if _, err := s.ownedIntegration(ctx, claims, integrationID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultSyncLogLimit
	}

	logs, err := s.syncLogRepo.ListByIntegration(ctx, integrationID, limit)
	if err != nil {
		logrus.WithError(err).WithField("integration_id", integrationID).Error("integrations: failed to list sync logs")
		return nil, NewIntegrationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, integrationID, "Falha ao listar histórico de sincronização")
	}

	return logs, nil
}

// ownedIntegration esconde integrações de outros usuários atrás de um not found
func (s *Service) ownedIntegration(ctx context.Context, claims *domain.Claims, integrationID string) (*domain.Integration, error) {
	if integrationID == "" {
		return nil, NewIntegrationError(ErrIntegrationIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	integration, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		logrus.WithError(err).WithField("integration_id", integrationID).Error("integrations: failed to load integration")
		return nil, NewIntegrationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, integrationID, "Falha ao consultar integração")
	}

	if integration == nil || !claims.CanAccess(integration.UserID) {
		return nil, NewIntegrationErrorWithID(ErrIntegrationNotFound, apiErrors.ErrNotFound, integrationID, "")
	}

	return integration, nil
}
