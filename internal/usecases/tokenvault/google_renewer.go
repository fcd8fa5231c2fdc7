package tokenvault

import (
	"context"
	"time"

	"github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-monitor-api/infrastructure/repository"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

const defaultGoogleTokenLifetime = time.Hour

// GoogleRenewer usa o refresh token armazenado no grant refresh_token do OAuth2
type GoogleRenewer struct {
	renewal
	cfg    config.Google
	client googleclient.Client
}

func NewGoogleRenewer(cfg config.Google, client googleclient.Client, integrationRepo repository.IntegrationRepository) *GoogleRenewer {
	return &GoogleRenewer{
		renewal: renewal{integrationRepo: integrationRepo, now: time.Now},
		cfg:     cfg,
		client:  client,
	}
}

func (r *GoogleRenewer) WithClock(now func() time.Time) *GoogleRenewer {
	r.now = now
	return r
}

func (r *GoogleRenewer) Provider() domain.Provider {
	return domain.ProviderGoogle
}

func (r *GoogleRenewer) Renew(ctx context.Context, integration *domain.Integration) (string, error) {
	if !integration.HasRefreshToken() {
		return "", r.fail(ctx, integration, ErrMissingRefreshToken)
	}

	if err := r.cfg.RequireCredentials(); err != nil {
		return "", r.fail(ctx, integration, err)
	}

	resp, err := r.client.RefreshAccessToken(ctx, *integration.RefreshToken)
	if err != nil {
		return "", r.fail(ctx, integration, err)
	}

	lifetime := defaultGoogleTokenLifetime
	if resp.ExpiresIn > 0 {
		lifetime = time.Duration(resp.ExpiresIn) * time.Second
	}

	return r.succeed(ctx, integration, resp.AccessToken, lifetime)
}
