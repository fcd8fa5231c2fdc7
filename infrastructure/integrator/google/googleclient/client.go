package googleclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/budget-monitor-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxPages = 200

type Client interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
	ListAccessibleCustomers(ctx context.Context, token string) ([]string, error)
	Search(ctx context.Context, token, customerID, query string) ([]googledomain.SearchRow, error)
}

type GoogleClient struct {
	Cfg  config.Google
	http *resty.Client
}

func NewClient(cfg config.Google) Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &GoogleClient{
		Cfg:  cfg,
		http: httpClient,
	}
}

func (c *GoogleClient) adsURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.Cfg.AdsURL, "/"), c.Cfg.AdsVersion, strings.TrimLeft(path, "/"))
}

func (c *GoogleClient) adsRequest(ctx context.Context, token string) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("developer-token", c.Cfg.DeveloperToken)

	if c.Cfg.LoginCustomerID != "" {
		req.SetHeader("login-customer-id", strings.ReplaceAll(c.Cfg.LoginCustomerID, "-", ""))
	}

	return req
}

// ListAccessibleCustomers devolve os ids das contas acessíveis pelo token
func (c *GoogleClient) ListAccessibleCustomers(ctx context.Context, token string) ([]string, error) {
	if err := c.Cfg.RequireDeveloperToken(); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, func() (*resty.Response, error) {
		return c.adsRequest(ctx, token).Get(c.adsURL("customers:listAccessibleCustomers"))
	})
	if err != nil {
		return nil, err
	}

	var out googledomain.ListAccessibleCustomersResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("google: failed to decode customers response: %w", err)
	}

	customerIDs := make([]string, 0, len(out.ResourceNames))
	for _, name := range out.ResourceNames {
		customerIDs = append(customerIDs, strings.TrimPrefix(name, "customers/"))
	}

	return customerIDs, nil
}

// Search executa uma consulta GAQL seguindo o nextPageToken até a última página
func (c *GoogleClient) Search(ctx context.Context, token, customerID, query string) ([]googledomain.SearchRow, error) {
	if err := c.Cfg.RequireDeveloperToken(); err != nil {
		return nil, err
	}

	endpoint := c.adsURL(fmt.Sprintf("customers/%s/googleAds:search", customerID))
	rows := make([]googledomain.SearchRow, 0)
	pageToken := ""

	for pages := 0; pages < maxPages; pages++ {
		body, err := json.Marshal(googledomain.SearchRequest{Query: query, PageToken: pageToken})
		if err != nil {
			return nil, err
		}

		resp, err := c.send(ctx, func() (*resty.Response, error) {
			return c.adsRequest(ctx, token).
				SetHeader("Content-Type", "application/json").
				SetBody(body).
				Post(endpoint)
		})
		if err != nil {
			return nil, err
		}

		var out googledomain.SearchResponse
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return nil, fmt.Errorf("google: failed to decode search response: %w", err)
		}

		rows = append(rows, out.Results...)
		if out.NextPageToken == "" {
			return rows, nil
		}
		pageToken = out.NextPageToken
	}

	logrus.WithField("customer_id", customerID).Warn("google: page limit reached, stopping pagination")
	return rows, nil
}

// send executa a requisição e repete respostas limitadas por taxa com backoff linear
func (c *GoogleClient) send(ctx context.Context, do func() (*resty.Response, error)) (*resty.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := do()
		if err != nil {
			return nil, transportError(ctx, err)
		}

		if !resp.IsError() {
			return resp, nil
		}

		providerErr := classifyError(resp.StatusCode(), resp.Body())
		if !domain.IsRateLimited(providerErr) || attempt >= c.Cfg.MaxRetries {
			return nil, providerErr
		}

		wait := c.Cfg.RetryBackoff * time.Duration(attempt+1)
		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"wait":    wait.String(),
		}).Warn("google: rate limited, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return &domain.ProviderError{
		Provider: domain.ProviderGoogle,
		Kind:     domain.ProviderErrorTransient,
		Message:  err.Error(),
	}
}

// classifyError converte respostas de erro do Google na taxonomia de erros de provedor
func classifyError(statusCode int, body []byte) *domain.ProviderError {
	providerErr := &domain.ProviderError{
		Provider:   domain.ProviderGoogle,
		Kind:       domain.ProviderErrorTransient,
		StatusCode: statusCode,
		Message:    string(body),
	}

	var oauthErr googledomain.OAuthErrorResponse
	if err := json.Unmarshal(body, &oauthErr); err == nil && oauthErr.Error != "" {
		providerErr.Message = strings.TrimSpace(oauthErr.Error + " " + oauthErr.ErrorDescription)
		if oauthErr.Error == "invalid_grant" {
			providerErr.Kind = domain.ProviderErrorAuthorization
			return providerErr
		}
	}

	var apiErr googledomain.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		providerErr.Code = apiErr.Error.Code
		providerErr.Message = apiErr.Error.Message
	}

	switch statusCode {
	case http.StatusUnauthorized:
		providerErr.Kind = domain.ProviderErrorAuthorization
	case http.StatusForbidden:
		providerErr.Kind = domain.ProviderErrorAccessRevoked
	case http.StatusNotFound:
		providerErr.Kind = domain.ProviderErrorResourceGone
	case http.StatusTooManyRequests:
		providerErr.Kind = domain.ProviderErrorRateLimited
	}

	return providerErr
}
