package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// limite de páginas por listagem, evita loop infinito com cursores quebrados
const maxPages = 200

type Client interface {
	ExchangeToken(ctx context.Context, token string) (*TokenResponse, error)
	GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error)
	GetCampaigns(ctx context.Context, token, accountID string) ([]metadomain.Campaign, error)
	GetCampaignInsights(ctx context.Context, token, campaignID string, dateRange domain.DateRange) ([]metadomain.CampaignInsight, error)
	GetAdSets(ctx context.Context, token, campaignID string) ([]metadomain.AdSet, error)
}

type MetaClient struct {
	Cfg        config.Meta
	HTTPClient *http.Client
}

func NewClient(cfg config.Meta) Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type page[T any] struct {
	Data   []T               `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// getAll percorre todas as páginas seguindo paging.next
func getAll[T any](ctx context.Context, c *MetaClient, endpoint string, params url.Values) ([]T, error) {
	items := make([]T, 0)
	next := endpoint + "?" + params.Encode()

	for pages := 0; next != ""; pages++ {
		if pages >= maxPages {
			logrus.WithField("endpoint", endpoint).Warn("meta: page limit reached, stopping pagination")
			break
		}

		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var response page[T]
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, fmt.Errorf("meta: failed to decode response: %w", err)
		}

		items = append(items, response.Data...)
		next = response.Paging.Next
	}

	return items, nil
}

// get executa a requisição e repete chamadas limitadas por taxa com backoff linear
func (c *MetaClient) get(ctx context.Context, requestURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, err := c.doGet(ctx, requestURL)
		if err == nil {
			return body, nil
		}

		if !domain.IsRateLimited(err) || attempt >= c.Cfg.MaxRetries {
			return nil, err
		}

		wait := c.Cfg.RetryBackoff * time.Duration(attempt+1)
		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"wait":    wait.String(),
		}).Warn("meta: rate limited, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *MetaClient) doGet(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domain.ProviderError{
			Provider: domain.ProviderMeta,
			Kind:     domain.ProviderErrorTransient,
			Message:  err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyError(resp.StatusCode, body)
	}

	return body, nil
}

// classifyError converte a resposta de erro do Graph API na taxonomia de erros de provedor
func classifyError(statusCode int, body []byte) *domain.ProviderError {
	providerErr := &domain.ProviderError{
		Provider:   domain.ProviderMeta,
		Kind:       domain.ProviderErrorTransient,
		StatusCode: statusCode,
	}

	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Code == 0 {
		providerErr.Message = truncate(string(body), 300)
		if statusCode == http.StatusUnauthorized {
			providerErr.Kind = domain.ProviderErrorAuthorization
		}
		return providerErr
	}

	providerErr.Code = errResp.Error.Code
	providerErr.Subcode = errResp.Error.ErrorSubcode
	providerErr.Message = errResp.Error.Message

	switch {
	case errResp.IsTokenExpired() || containsTokenExpirationMessage(errResp.Error.Message):
		providerErr.Kind = domain.ProviderErrorAuthorization
	case errResp.IsResourceGone():
		providerErr.Kind = domain.ProviderErrorResourceGone
	case errResp.IsPermissionDenied():
		providerErr.Kind = domain.ProviderErrorAccessRevoked
	case errResp.IsRateLimited():
		providerErr.Kind = domain.ProviderErrorRateLimited
	}

	return providerErr
}

func containsTokenExpirationMessage(message string) bool {
	expirationMessages := []string{
		"access token has expired",
		"session has expired",
		"error validating access token",
		"the session is invalid",
	}

	lower := strings.ToLower(message)
	for _, msg := range expirationMessages {
		if strings.Contains(lower, msg) {
			return true
		}
	}

	return false
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
