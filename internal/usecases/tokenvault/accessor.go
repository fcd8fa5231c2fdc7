package tokenvault

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

// RenewalMargin é a antecedência mínima de validade para usar o token armazenado
const RenewalMargin = 5 * time.Minute

// TokenAccessor entrega um access token válido para uma integração
type TokenAccessor interface {
	GetValidAccessToken(ctx context.Context, integrationID string) (string, error)
}

// TokenRenewer é a estratégia de renovação de um provedor
type TokenRenewer interface {
	Provider() domain.Provider
	Renew(ctx context.Context, integration *domain.Integration) (string, error)
}

type Accessor struct {
	integrationRepo repository.IntegrationRepository
	renewers        map[domain.Provider]TokenRenewer
	now             func() time.Time
}

func NewAccessor(integrationRepo repository.IntegrationRepository, renewers ...TokenRenewer) *Accessor {
	byProvider := make(map[domain.Provider]TokenRenewer, len(renewers))
	for _, renewer := range renewers {
		byProvider[renewer.Provider()] = renewer
	}

	return &Accessor{
		integrationRepo: integrationRepo,
		renewers:        byProvider,
		now:             time.Now,
	}
}

// WithClock troca o relógio usado para avaliar a expiração
func (a *Accessor) WithClock(now func() time.Time) *Accessor {
	a.now = now
	return a
}

// GetValidAccessToken lê a integração do banco a cada chamada e renova o token quando
// ele expira em menos de RenewalMargin.
func (a *Accessor) GetValidAccessToken(ctx context.Context, integrationID string) (string, error) {
	integration, err := a.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		return "", fmt.Errorf("failed to load integration: %w", err)
	}

	if integration == nil {
		return "", ErrIntegrationNotFound
	}

	logger := logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"provider":       integration.Provider,
	})

	if integration.NeedsReauthorization() {
		logger.WithField("status", integration.Status).Info("token vault: integration requires re-authorization")
		return "", ErrReauthorizationRequired
	}

	if integration.ExpiresAt == nil {
		logger.Warn("token vault: integration has no expiry, returning stored token")
		return integration.AccessToken, nil
	}

	if integration.ExpiresAt.Sub(a.now()) > RenewalMargin {
		return integration.AccessToken, nil
	}

	renewer, ok := a.renewers[integration.Provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, integration.Provider)
	}

	logger.WithField("expires_at", integration.ExpiresAt.Format(time.RFC3339)).Info("token vault: token expiring, renewing")

	return renewer.Renew(ctx, integration)
}
