package googleclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

// TokenResponse é a resposta do endpoint OAuth2 do Google
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// RefreshAccessToken obtém um novo access token com o grant refresh_token
func (c *GoogleClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if err := c.Cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"grant_type":    "refresh_token",
				"client_id":     c.Cfg.ClientID,
				"client_secret": c.Cfg.ClientSecret,
				"refresh_token": refreshToken,
			}).
			Post(c.Cfg.TokenURL)
	})
	if err != nil {
		var providerErr *domain.ProviderError
		if errors.As(err, &providerErr) {
			logrus.WithFields(logrus.Fields{
				"status": providerErr.StatusCode,
				"kind":   providerErr.Kind,
			}).Error("google: token refresh rejected")
		}
		return nil, err
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(resp.Body(), &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}
