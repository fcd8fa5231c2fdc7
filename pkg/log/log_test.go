package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background(), " req-123 ")
	assert.Equal(t, "req-123", id)
	assert.Equal(t, "req-123", GetCorrelationID(ctx))

	ctx, generated := WithCorrelationID(context.Background(), "")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestKeepField(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	assert.True(t, keepField("integration_id"))
	assert.True(t, keepField("user_id"))
	assert.False(t, keepField("referer"))

	t.Setenv("APP_ENV", "production")
	assert.True(t, keepField("referer"))
}
