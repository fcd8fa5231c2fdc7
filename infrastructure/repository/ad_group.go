package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

type AdGroupRepository interface {
	UpsertBatch(ctx context.Context, groups []*domain.AdGroup) error
}

type adGroupRepository struct {
	conn postgres.Conn
}

func NewAdGroupRepository(conn postgres.Conn) AdGroupRepository {
	return &adGroupRepository{
		conn: conn,
	}
}

// UpsertBatch grava conjuntos (Meta) e grupos (Google) de anúncios pela chave (campaign_id, ad_group_id)
func (r *adGroupRepository) UpsertBatch(ctx context.Context, groups []*domain.AdGroup) error {
	if len(groups) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("ad_groups").
		Columns("id", "campaign_id", "ad_group_id", "name", "status", "daily_budget", "lifetime_budget").
		PlaceholderFormat(squirrel.Dollar)

	seen := make(map[string]struct{}, len(groups))
	for _, group := range groups {
		// o mesmo id repetido no lote quebraria o ON CONFLICT
		key := group.CampaignID + ":" + group.AdGroupID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		query = query.Values(
			utils.MustGenerateID(),
			group.CampaignID,
			group.AdGroupID,
			group.Name,
			group.Status,
			group.DailyBudget,
			group.LifetimeBudget,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (campaign_id, ad_group_id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			daily_budget = EXCLUDED.daily_budget,
			lifetime_budget = EXCLUDED.lifetime_budget,
			updated_at = NOW()
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sqlQuery, args...); err != nil {
		return wrapQueryError(err)
	}

	return nil
}
