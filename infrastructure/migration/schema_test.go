package migration

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-monitor-api/internal/domain"
)

type recordingExecer struct {
	statements []string
	failOn     string
}

func (r *recordingExecer) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	if r.failOn != "" && strings.Contains(query, r.failOn) {
		return nil, errors.New("permission denied")
	}
	r.statements = append(r.statements, query)
	return nil, nil
}

func TestApply(t *testing.T) {
	db := &recordingExecer{}

	require.NoError(t, Apply(context.Background(), db))

	require.Len(t, db.statements, len(schema))
	for _, stmt := range db.statements {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}

func TestApply_CreatesParentsFirst(t *testing.T) {
	db := &recordingExecer{}
	require.NoError(t, Apply(context.Background(), db))

	position := func(table string) int {
		for i, stmt := range db.statements {
			if strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				return i
			}
		}
		t.Fatalf("table %s not created", table)
		return -1
	}

	assert.Less(t, position("integrations"), position("ad_accounts"))
	assert.Less(t, position("ad_accounts"), position("campaigns"))
	assert.Less(t, position("campaigns"), position("metrics"))
	assert.Less(t, position("campaigns"), position("campaign_alerts"))
}

func TestApply_ActiveAlertIndex(t *testing.T) {
	db := &recordingExecer{}
	require.NoError(t, Apply(context.Background(), db))

	var found bool
	for _, stmt := range db.statements {
		if strings.Contains(stmt, "campaign_alerts_active_threshold_uq") {
			found = true
			assert.Contains(t, stmt, "CREATE UNIQUE INDEX")
			assert.Contains(t, stmt, "(campaign_id, threshold_amount) WHERE is_active")
		}
	}
	assert.True(t, found)
}

func TestApply_StopsOnFailure(t *testing.T) {
	db := &recordingExecer{failOn: "CREATE TABLE IF NOT EXISTS campaigns "}

	err := Apply(context.Background(), db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaigns")
	for _, stmt := range db.statements {
		assert.NotContains(t, stmt, "metrics")
	}
}

// columnTypes extrai "coluna -> tipo" das linhas de um CREATE TABLE
func columnTypes(t *testing.T, table string) map[string]string {
	t.Helper()

	for _, stmt := range schema {
		if stmt.name != table {
			continue
		}
		columns := make(map[string]string)
		for _, line := range strings.Split(stmt.sql, "\n")[1:] {
			fields := strings.Fields(strings.TrimSpace(line))
			if len(fields) < 2 || strings.ToUpper(fields[0]) == fields[0] {
				continue
			}
			columns[fields[0]] = strings.TrimSuffix(fields[1], ",")
		}
		return columns
	}

	t.Fatalf("table %s not found", table)
	return nil
}

func TestSchema_MetricColumnsMatchDomainTypes(t *testing.T) {
	columns := columnTypes(t, "metrics")
	metricType := reflect.TypeOf(domain.Metric{})

	for i := 0; i < metricType.NumField(); i++ {
		field := metricType.Field(i)
		column := strings.Split(field.Tag.Get("json"), ",")[0]
		columnType, ok := columns[column]
		require.True(t, ok, "column %s missing", column)

		switch field.Type.Kind() {
		case reflect.Float64:
			assert.True(t, strings.HasPrefix(columnType, "NUMERIC") || columnType == "DOUBLE",
				"column %s holds fractional values but is %s", column, columnType)
		case reflect.Int64:
			assert.Equal(t, "BIGINT", columnType, "column %s", column)
		}
	}
}
