package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
	"github.com/vfg2006/budget-monitor-api/pkg/utils"
)

const adAccountsTable = "ad_accounts"

type AdAccountRepository interface {
	Upsert(ctx context.Context, account *domain.AdAccount) (string, error)
	ListByIntegration(ctx context.Context, integrationID string) ([]*domain.AdAccount, error)
	Deactivate(ctx context.Context, ids []string) (int64, error)
}

type adAccountRepository struct {
	conn postgres.Conn
}

func NewAdAccountRepository(conn postgres.Conn) AdAccountRepository {
	return &adAccountRepository{
		conn: conn,
	}
}

// Upsert grava a conta pela chave (integration_id, account_id) e devolve o id da linha
func (r *adAccountRepository) Upsert(ctx context.Context, account *domain.AdAccount) (string, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert(adAccountsTable).
		Columns("id", "integration_id", "account_id", "name", "currency", "timezone", "is_active").
		Values(
			utils.MustGenerateID(),
			account.IntegrationID,
			account.AccountID,
			account.Name,
			account.Currency,
			account.Timezone,
			account.IsActive,
		).
		Suffix(`
			ON CONFLICT (integration_id, account_id) DO UPDATE SET
				name = EXCLUDED.name,
				currency = EXCLUDED.currency,
				timezone = EXCLUDED.timezone,
				is_active = EXCLUDED.is_active,
				updated_at = NOW()
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	var id string
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", wrapQueryError(err)
	}

	return id, nil
}

func (r *adAccountRepository) ListByIntegration(ctx context.Context, integrationID string) ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("id", "integration_id", "account_id", "name", "currency", "timezone", "is_active", "created_at", "updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"integration_id": integrationID}).
		OrderBy("name ASC").
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

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		account := &domain.AdAccount{}
		if err := rows.Scan(
			&account.ID,
			&account.IntegrationID,
			&account.AccountID,
			&account.Name,
			&account.Currency,
			&account.Timezone,
			&account.IsActive,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

// Deactivate marca as contas como inativas; contas nunca são apagadas pela sincronização
func (r *adAccountRepository) Deactivate(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Update(adAccountsTable).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids, "is_active": true}).
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
