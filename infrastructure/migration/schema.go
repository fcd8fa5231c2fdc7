package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Execer é satisfeito por *sql.DB e *sql.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type statement struct {
	name string
	sql  string
}

// schema pode ser reaplicado sem efeito: toda instrução usa IF NOT EXISTS
var schema = []statement{
	{
		name: "integrations",
		sql: `CREATE TABLE IF NOT EXISTS integrations (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	provider      TEXT NOT NULL CHECK (provider IN ('meta', 'google')),
	access_token  TEXT NOT NULL,
	refresh_token TEXT,
	expires_at    TIMESTAMPTZ,
	status        TEXT NOT NULL DEFAULT 'active',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		name: "integrations_user_idx",
		sql:  `CREATE INDEX IF NOT EXISTS integrations_user_idx ON integrations (user_id)`,
	},
	{
		name: "ad_accounts",
		sql: `CREATE TABLE IF NOT EXISTS ad_accounts (
	id             TEXT PRIMARY KEY,
	integration_id TEXT NOT NULL REFERENCES integrations (id) ON DELETE CASCADE,
	account_id     TEXT NOT NULL,
	name           TEXT NOT NULL DEFAULT '',
	currency       TEXT NOT NULL DEFAULT '',
	timezone       TEXT NOT NULL DEFAULT '',
	is_active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (integration_id, account_id)
)`,
	},
	{
		name: "campaigns",
		sql: `CREATE TABLE IF NOT EXISTS campaigns (
	id              TEXT PRIMARY KEY,
	ad_account_id   TEXT NOT NULL REFERENCES ad_accounts (id) ON DELETE CASCADE,
	campaign_id     TEXT NOT NULL,
	name            TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT '',
	objective       TEXT NOT NULL DEFAULT '',
	daily_budget    NUMERIC(14, 2),
	lifetime_budget NUMERIC(14, 2),
	sync_enabled    BOOLEAN NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (ad_account_id, campaign_id)
)`,
	},
	{
		name: "campaigns_monitorable_idx",
		sql:  `CREATE INDEX IF NOT EXISTS campaigns_monitorable_idx ON campaigns (status) WHERE daily_budget IS NOT NULL`,
	},
	{
		name: "ad_groups",
		sql: `CREATE TABLE IF NOT EXISTS ad_groups (
	id              TEXT PRIMARY KEY,
	campaign_id     TEXT NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
	ad_group_id     TEXT NOT NULL,
	name            TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT '',
	daily_budget    NUMERIC(14, 2),
	lifetime_budget NUMERIC(14, 2),
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (campaign_id, ad_group_id)
)`,
	},
	{
		name: "metrics",
		sql: `CREATE TABLE IF NOT EXISTS metrics (
	id          TEXT PRIMARY KEY,
	campaign_id TEXT NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
	ad_id       TEXT NOT NULL DEFAULT '',
	date        DATE NOT NULL,
	spend       NUMERIC(14, 2) NOT NULL DEFAULT 0,
	impressions BIGINT NOT NULL DEFAULT 0,
	clicks      BIGINT NOT NULL DEFAULT 0,
	reach       BIGINT NOT NULL DEFAULT 0,
	conversions NUMERIC(14, 2) NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (campaign_id, date, ad_id)
)`,
	},
	{
		name: "campaign_alerts",
		sql: `CREATE TABLE IF NOT EXISTS campaign_alerts (
	id               TEXT PRIMARY KEY,
	campaign_id      TEXT NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
	alert_type       TEXT NOT NULL,
	threshold_amount NUMERIC(14, 2) NOT NULL,
	current_amount   NUMERIC(14, 2) NOT NULL DEFAULT 0,
	is_active        BOOLEAN NOT NULL DEFAULT TRUE,
	triggered_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	resolved_at      TIMESTAMPTZ
)`,
	},
	{
		name: "campaign_alerts_active_threshold_uq",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS campaign_alerts_active_threshold_uq
	ON campaign_alerts (campaign_id, threshold_amount) WHERE is_active`,
	},
	{
		name: "sync_logs",
		sql: `CREATE TABLE IF NOT EXISTS sync_logs (
	id                TEXT PRIMARY KEY,
	integration_id    TEXT REFERENCES integrations (id) ON DELETE CASCADE,
	sync_type         TEXT NOT NULL,
	status            TEXT NOT NULL,
	records_processed INTEGER NOT NULL DEFAULT 0,
	errors_count      INTEGER NOT NULL DEFAULT 0,
	error_message     TEXT,
	details           JSONB,
	started_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at      TIMESTAMPTZ
)`,
	},
	{
		name: "sync_logs_integration_idx",
		sql:  `CREATE INDEX IF NOT EXISTS sync_logs_integration_idx ON sync_logs (integration_id, started_at DESC)`,
	},
}

// Apply cria tabelas e índices que ainda não existem, na ordem das dependências
func Apply(ctx context.Context, db Execer) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt.sql); err != nil {
			return fmt.Errorf("failed to apply %s: %w", stmt.name, err)
		}
		logrus.WithField("object", stmt.name).Debug("migration: applied")
	}

	logrus.WithField("statements", len(schema)).Info("migration: schema up to date")
	return nil
}
