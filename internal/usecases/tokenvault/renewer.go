package tokenvault

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/metrics"
)

// renewal concentra o que é comum às estratégias: persistência do resultado e métricas
type renewal struct {
	integrationRepo repository.IntegrationRepository
	now             func() time.Time
}

// succeed grava token, expiração e status ativo em um único UPDATE
func (r *renewal) succeed(ctx context.Context, integration *domain.Integration, token string, expiresIn time.Duration) (string, error) {
	expiresAt := r.now().Add(expiresIn)

	if err := r.integrationRepo.UpdateToken(ctx, integration.ID, token, expiresAt); err != nil {
		metrics.TokenRenewals.WithLabelValues(string(integration.Provider), "failure").Inc()
		return "", fmt.Errorf("failed to persist renewed token: %w", err)
	}

	metrics.TokenRenewals.WithLabelValues(string(integration.Provider), "success").Inc()

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"provider":       integration.Provider,
		"expires_at":     expiresAt.Format(time.RFC3339),
	}).Info("token vault: token renewed")

	return token, nil
}

// fail marca a integração como expirada e devolve o RenewalError com a causa
func (r *renewal) fail(ctx context.Context, integration *domain.Integration, cause error) error {
	metrics.TokenRenewals.WithLabelValues(string(integration.Provider), "failure").Inc()

	logger := logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"provider":       integration.Provider,
	})
	logger.WithError(cause).Error("token vault: renewal failed, marking integration as expired")

	if err := r.integrationRepo.UpdateStatus(ctx, integration.ID, domain.IntegrationStatusExpired); err != nil {
		logger.WithError(err).Error("token vault: failed to mark integration as expired")
	}

	return &RenewalError{
		IntegrationID: integration.ID,
		Provider:      integration.Provider,
		Err:           cause,
	}
}
