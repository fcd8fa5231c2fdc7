package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

type MetricRepository interface {
	UpsertBatch(ctx context.Context, metrics []*domain.Metric) error
	SumSpendByCampaign(ctx context.Context, campaignID string) (float64, error)
}

type metricRepository struct {
	conn postgres.Conn
}

func NewMetricRepository(conn postgres.Conn) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// UpsertBatch grava as métricas diárias pela chave (campaign_id, date, ad_id)
func (r *metricRepository) UpsertBatch(ctx context.Context, metrics []*domain.Metric) error {
	if len(metrics) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("metrics").
		Columns("id", "campaign_id", "ad_id", "date", "spend", "impressions", "clicks", "reach", "conversions").
		PlaceholderFormat(squirrel.Dollar)

	seen := make(map[string]struct{}, len(metrics))
	for _, metric := range metrics {
		key := fmt.Sprintf("%s:%s:%s", metric.CampaignID, utils.FormatDate(metric.Date), metric.AdID)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		query = query.Values(
			utils.MustGenerateID(),
			metric.CampaignID,
			metric.AdID,
			utils.FormatDate(metric.Date),
			metric.Spend,
			metric.Impressions,
			metric.Clicks,
			metric.Reach,
			metric.Conversions,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (campaign_id, date, ad_id) DO UPDATE SET
			spend = EXCLUDED.spend,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			reach = EXCLUDED.reach,
			conversions = EXCLUDED.conversions,
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

// SumSpendByCampaign soma o gasto de todas as linhas de métricas da campanha, sem filtro de data
func (r *metricRepository) SumSpendByCampaign(ctx context.Context, campaignID string) (float64, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(spend), 0)").
		From("metrics").
		Where(squirrel.Eq{"campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var total float64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, wrapQueryError(err)
	}

	return total, nil
}
