package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

type CampaignAlertRepository interface {
	RefreshActiveAmounts(ctx context.Context, campaignID string, currentAmount float64) (int64, error)
	CreateIfAbsent(ctx context.Context, alert *domain.CampaignAlert) (bool, error)
	ListByCampaign(ctx context.Context, campaignID string, activeOnly bool) ([]*domain.CampaignAlert, error)
}

type campaignAlertRepository struct {
	conn postgres.Conn
}

func NewCampaignAlertRepository(conn postgres.Conn) CampaignAlertRepository {
	return &campaignAlertRepository{
		conn: conn,
	}
}

// RefreshActiveAmounts atualiza o current_amount de todos os alertas ativos da campanha
func (r *campaignAlertRepository) RefreshActiveAmounts(ctx context.Context, campaignID string, currentAmount float64) (int64, error) {
	query, args, err := squirrel.
		Update("campaign_alerts").
		Set("current_amount", currentAmount).
		Where(squirrel.Eq{"campaign_id": campaignID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, wrapQueryError(err)
	}

	return result.RowsAffected()
}

// CreateIfAbsent insere o alerta somente se não houver um alerta ativo para o mesmo
// (campaign_id, threshold_amount). O índice único parcial garante isso no banco.
func (r *campaignAlertRepository) CreateIfAbsent(ctx context.Context, alert *domain.CampaignAlert) (bool, error) {
	if alert.ID == "" {
		alert.ID = utils.MustGenerateID()
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("campaign_alerts").
		Columns("id", "campaign_id", "alert_type", "threshold_amount", "current_amount", "is_active", "triggered_at").
		Values(
			alert.ID,
			alert.CampaignID,
			alert.AlertType,
			alert.ThresholdAmount,
			alert.CurrentAmount,
			true,
			alert.TriggeredAt,
		).
		Suffix("ON CONFLICT (campaign_id, threshold_amount) WHERE is_active DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, wrapQueryError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *campaignAlertRepository) ListByCampaign(ctx context.Context, campaignID string, activeOnly bool) ([]*domain.CampaignAlert, error) {
	where := squirrel.Eq{"campaign_id": campaignID}
	if activeOnly {
		where["is_active"] = true
	}

	query, args, err := squirrel.
		Select("id", "campaign_id", "alert_type", "threshold_amount", "current_amount", "is_active", "triggered_at", "resolved_at").
		From("campaign_alerts").
		Where(where).
		OrderBy("threshold_amount ASC", "triggered_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer rows.Close()

	alerts := make([]*domain.CampaignAlert, 0)
	for rows.Next() {
		alert := &domain.CampaignAlert{}
		var resolvedAt sql.NullTime
		if err := rows.Scan(
			&alert.ID,
			&alert.CampaignID,
			&alert.AlertType,
			&alert.ThresholdAmount,
			&alert.CurrentAmount,
			&alert.IsActive,
			&alert.TriggeredAt,
			&resolvedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o alerta: %w", err)
		}
		if resolvedAt.Valid {
			alert.ResolvedAt = &resolvedAt.Time
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return alerts, nil
}
