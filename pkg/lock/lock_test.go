package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_TryLock(t *testing.T) {
	ctx := context.Background()
	locker := NewLocalLocker()

	release, acquired, err := locker.TryLock(ctx, "budget_monitor", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, acquired, err = locker.TryLock(ctx, "budget_monitor", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "a chave ainda está em uso")

	_, acquired, err = locker.TryLock(ctx, "meta_campaigns", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "chaves diferentes não competem")

	release()

	_, acquired, err = locker.TryLock(ctx, "budget_monitor", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLocalLocker_ExpiredLockCanBeTaken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	locker := NewLocalLocker()
	locker.nowFn = func() time.Time { return now }

	staleRelease, acquired, err := locker.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	now = now.Add(2 * time.Minute)

	_, acquired, err = locker.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	// liberar o lock antigo não pode apagar o lock do novo dono
	staleRelease()

	_, acquired, err = locker.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestRedisLocker_ConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	locker := NewRedisLocker(client, "budget-monitor:")

	release, acquired, err := locker.TryLock(context.Background(), "job", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget-monitor:job")
	assert.False(t, acquired)
	assert.Nil(t, release)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse redis url")
}
