package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/budget-monitor-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultSyncLogLimit = 20

type SyncLogRepository interface {
	Start(ctx context.Context, integrationID *string, syncType string) (*domain.SyncLog, error)
	Finish(ctx context.Context, log *domain.SyncLog) error
	ListByIntegration(ctx context.Context, integrationID string, limit int) ([]*domain.SyncLog, error)
}

type syncLogRepository struct {
	conn postgres.Conn
}

func NewSyncLogRepository(conn postgres.Conn) SyncLogRepository {
	return &syncLogRepository{
		conn: conn,
	}
}

// Start grava a linha com status running antes de qualquer chamada ao provedor
func (r *syncLogRepository) Start(ctx context.Context, integrationID *string, syncType string) (*domain.SyncLog, error) {
	log := &domain.SyncLog{
		ID:            uuid.NewString(),
		IntegrationID: integrationID,
		SyncType:      syncType,
		Status:        domain.SyncStatusRunning,
		StartedAt:     time.Now().UTC(),
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("sync_logs").
		Columns("id", "integration_id", "sync_type", "status", "started_at").
		Values(log.ID, log.IntegrationID, log.SyncType, log.Status, log.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return nil, wrapQueryError(err)
	}

	return log, nil
}

// Finish grava o resultado final da execução
func (r *syncLogRepository) Finish(ctx context.Context, log *domain.SyncLog) error {
	details, err := json.Marshal(log.Details)
	if err != nil {
		return fmt.Errorf("failed to encode sync details: %w", err)
	}

	if log.CompletedAt == nil {
		completedAt := time.Now().UTC()
		log.CompletedAt = &completedAt
	}

	query, args, err := squirrel.
		Update("sync_logs").
		Set("status", log.Status).
		Set("records_processed", log.RecordsProcessed).
		Set("errors_count", log.ErrorsCount).
		Set("error_message", log.ErrorMessage).
		Set("details", string(details)).
		Set("completed_at", log.CompletedAt).
		Where(squirrel.Eq{"id": log.ID}).
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

func (r *syncLogRepository) ListByIntegration(ctx context.Context, integrationID string, limit int) ([]*domain.SyncLog, error) {
	if limit <= 0 {
		limit = defaultSyncLogLimit
	}

	query, args, err := squirrel.
		Select("id", "integration_id", "sync_type", "status", "records_processed", "errors_count", "error_message", "details", "started_at", "completed_at").
		From("sync_logs").
		Where(squirrel.Eq{"integration_id": integrationID}).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
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

	logs := make([]*domain.SyncLog, 0)
	for rows.Next() {
		log := &domain.SyncLog{}
		var integration, errorMessage sql.NullString
		var details []byte
		var completedAt sql.NullTime

		if err := rows.Scan(
			&log.ID,
			&integration,
			&log.SyncType,
			&log.Status,
			&log.RecordsProcessed,
			&log.ErrorsCount,
			&errorMessage,
			&details,
			&log.StartedAt,
			&completedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o log de sincronização: %w", err)
		}

		if integration.Valid {
			log.IntegrationID = &integration.String
		}
		if errorMessage.Valid {
			log.ErrorMessage = &errorMessage.String
		}
		if completedAt.Valid {
			log.CompletedAt = &completedAt.Time
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &log.Details); err != nil {
				return nil, fmt.Errorf("erro ao decodificar detalhes da sincronização: %w", err)
			}
		}

		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return logs, nil
}
