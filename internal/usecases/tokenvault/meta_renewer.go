package tokenvault

import (
	"context"
	"time"

	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

// Tokens de longa duração do Meta valem 60 dias quando a API não informa expires_in
const defaultMetaTokenLifetime = 60 * 24 * time.Hour

// MetaRenewer troca o token atual por um novo token de longa duração
type MetaRenewer struct {
	renewal
	cfg    config.Meta
	client metaclient.Client
}

func NewMetaRenewer(cfg config.Meta, client metaclient.Client, integrationRepo repository.IntegrationRepository) *MetaRenewer {
	return &MetaRenewer{
		renewal: renewal{integrationRepo: integrationRepo, now: time.Now},
		cfg:     cfg,
		client:  client,
	}
}

func (r *MetaRenewer) WithClock(now func() time.Time) *MetaRenewer {
	r.now = now
	return r
}

func (r *MetaRenewer) Provider() domain.Provider {
	return domain.ProviderMeta
}

func (r *MetaRenewer) Renew(ctx context.Context, integration *domain.Integration) (string, error) {
	if err := r.cfg.RequireCredentials(); err != nil {
		return "", r.fail(ctx, integration, err)
	}

	resp, err := r.client.ExchangeToken(ctx, integration.AccessToken)
	if err != nil {
		return "", r.fail(ctx, integration, err)
	}

	lifetime := defaultMetaTokenLifetime
	if resp.ExpiresIn > 0 {
		lifetime = time.Duration(resp.ExpiresIn) * time.Second
	}

	return r.succeed(ctx, integration, resp.AccessToken, lifetime)
}
