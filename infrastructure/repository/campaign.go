package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

const campaignsTable = "campaigns c"

type CampaignRepository interface {
	Upsert(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	ListByAdAccount(ctx context.Context, adAccountID string) ([]*domain.Campaign, error)
	ListMonitorable(ctx context.Context) ([]*domain.Campaign, error)
	DisableSync(ctx context.Context, id string) error
	GetOwnerUserID(ctx context.Context, id string) (string, error)
}

type campaignRepository struct {
	conn postgres.Conn
}

func NewCampaignRepository(conn postgres.Conn) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// Upsert grava a campanha pela chave (ad_account_id, campaign_id).
// sync_enabled nunca é sobrescrito: uma campanha desabilitada continua desabilitada.
func (r *campaignRepository) Upsert(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "ad_account_id", "campaign_id", "name", "status", "objective", "daily_budget", "lifetime_budget", "sync_enabled").
		Values(
			utils.MustGenerateID(),
			campaign.AdAccountID,
			campaign.CampaignID,
			campaign.Name,
			campaign.Status,
			campaign.Objective,
			campaign.DailyBudget,
			campaign.LifetimeBudget,
			true,
		).
		Suffix(`
			ON CONFLICT (ad_account_id, campaign_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				objective = EXCLUDED.objective,
				daily_budget = EXCLUDED.daily_budget,
				lifetime_budget = EXCLUDED.lifetime_budget,
				updated_at = NOW()
			RETURNING id, sync_enabled
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	stored := *campaign
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&stored.ID, &stored.SyncEnabled); err != nil {
		return nil, wrapQueryError(err)
	}

	return &stored, nil
}

func (r *campaignRepository) ListByAdAccount(ctx context.Context, adAccountID string) ([]*domain.Campaign, error) {
	return r.list(ctx, squirrel.Eq{"c.ad_account_id": adAccountID})
}

// ListMonitorable lista todas as campanhas ativas com orçamento diário definido
func (r *campaignRepository) ListMonitorable(ctx context.Context) ([]*domain.Campaign, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"c.status": domain.CampaignStatusActive},
		squirrel.NotEq{"c.daily_budget": nil},
	})
}

func (r *campaignRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.ad_account_id, c.campaign_id, c.name, c.status, c.objective, c.daily_budget, c.lifetime_budget, c.sync_enabled, c.created_at, c.updated_at").
		From(campaignsTable).
		Where(where).
		OrderBy("c.created_at ASC").
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		var objective sql.NullString
		var dailyBudget, lifetimeBudget sql.NullFloat64

		if err := rows.Scan(
			&campaign.ID,
			&campaign.AdAccountID,
			&campaign.CampaignID,
			&campaign.Name,
			&campaign.Status,
			&objective,
			&dailyBudget,
			&lifetimeBudget,
			&campaign.SyncEnabled,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a campanha: %w", err)
		}

		campaign.Objective = objective.String
		if dailyBudget.Valid {
			campaign.DailyBudget = &dailyBudget.Float64
		}
		if lifetimeBudget.Valid {
			campaign.LifetimeBudget = &lifetimeBudget.Float64
		}

		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return campaigns, nil
}

// DisableSync é a remoção lógica de uma campanha que não existe mais no provedor
func (r *campaignRepository) DisableSync(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("sync_enabled", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return wrapQueryError(err)
	}

	return nil
}

// GetOwnerUserID resolve o dono da campanha pela cadeia conta -> integração.
// Retorna string vazia quando a campanha não existe.
func (r *campaignRepository) GetOwnerUserID(ctx context.Context, id string) (string, error) {
	query, args, err := squirrel.
		Select("i.user_id").
		From(campaignsTable).
		Join("ad_accounts a ON a.id = c.ad_account_id").
		Join("integrations i ON i.id = a.integration_id").
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	var userID string
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", wrapQueryError(err)
	}

	return userID, nil
}
