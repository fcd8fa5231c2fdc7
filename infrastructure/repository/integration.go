package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

const integrationsTable = "integrations"

var integrationColumns = []string{
	"id", "user_id", "provider", "access_token", "refresh_token", "expires_at", "status", "created_at", "updated_at",
}

type IntegrationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Integration, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Integration, error)
	ListActiveByProvider(ctx context.Context, provider domain.Provider) ([]*domain.Integration, error)
	UpdateToken(ctx context.Context, id, accessToken string, expiresAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error
	Delete(ctx context.Context, id string) error
}

type integrationRepository struct {
	conn postgres.Conn
}

func NewIntegrationRepository(conn postgres.Conn) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

// GetByID retorna nil quando a integração não existe
func (r *integrationRepository) GetByID(ctx context.Context, id string) (*domain.Integration, error) {
	query, args, err := squirrel.
		Select(integrationColumns...).
		From(integrationsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	integration, err := r.deserialize(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError(err)
	}

	return integration, nil
}

func (r *integrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Integration, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *integrationRepository) ListActiveByProvider(ctx context.Context, provider domain.Provider) ([]*domain.Integration, error) {
	return r.list(ctx, squirrel.Eq{
		"provider": provider,
		"status":   domain.IntegrationStatusActive,
	})
}

func (r *integrationRepository) list(ctx context.Context, where squirrel.Eq) ([]*domain.Integration, error) {
	query, args, err := squirrel.
		Select(integrationColumns...).
		From(integrationsTable).
		Where(where).
		OrderBy("created_at ASC").
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

	integrations := make([]*domain.Integration, 0)
	for rows.Next() {
		integration, err := r.deserialize(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a integração: %w", err)
		}
		integrations = append(integrations, integration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return integrations, nil
}

// UpdateToken grava token, expiração e status ativo em um único UPDATE
func (r *integrationRepository) UpdateToken(ctx context.Context, id, accessToken string, expiresAt time.Time) error {
	return r.update(ctx, id, squirrel.Update(integrationsTable).
		Set("access_token", accessToken).
		Set("expires_at", expiresAt).
		Set("status", domain.IntegrationStatusActive).
		Set("updated_at", squirrel.Expr("NOW()")))
}

func (r *integrationRepository) UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error {
	return r.update(ctx, id, squirrel.Update(integrationsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")))
}

func (r *integrationRepository) update(ctx context.Context, id string, builder squirrel.UpdateBuilder) error {
	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapQueryError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete remove a integração; contas, campanhas, métricas e alertas caem em cascata
func (r *integrationRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(integrationsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapQueryError(err)
	}

	if rowsAffected, err := result.RowsAffected(); err == nil && rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *integrationRepository) deserialize(row scanner) (*domain.Integration, error) {
	integration := &domain.Integration{}
	var refreshToken sql.NullString
	var expiresAt sql.NullTime

	if err := row.Scan(
		&integration.ID,
		&integration.UserID,
		&integration.Provider,
		&integration.AccessToken,
		&refreshToken,
		&expiresAt,
		&integration.Status,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if refreshToken.Valid {
		integration.RefreshToken = &refreshToken.String
	}
	if expiresAt.Valid {
		integration.ExpiresAt = &expiresAt.Time
	}

	return integration, nil
}
