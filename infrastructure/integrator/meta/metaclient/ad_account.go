package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/budget-monitor-api/infrastructure/integrator/meta/domain"
)

// GetAdAccounts lista todas as contas de anúncio acessíveis pelo token
func (c *MetaClient) GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,account_id,name,currency,timezone_name,account_status")
	params.Add("limit", "100")
	params.Add("access_token", token)

	return getAll[metadomain.AdAccount](ctx, c, fmt.Sprintf("%s/me/adaccounts", c.Cfg.URL), params)
}
