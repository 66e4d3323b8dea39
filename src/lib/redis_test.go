package lib

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestAcquireCooldown(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectSetNX("review:cooldown:1.2.3.4", "1", time.Minute).SetVal(true)
	ok, err := AcquireCooldown(ctx, rdb, "review:cooldown:1.2.3.4", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectSetNX("review:cooldown:1.2.3.4", "1", time.Minute).SetVal(false)
	ok, err = AcquireCooldown(ctx, rdb, "review:cooldown:1.2.3.4", time.Minute)
	assert.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectSetNX("review:cooldown:5.6.7.8", "1", time.Minute).SetErr(errors.New("i/o timeout"))
	ok, err = AcquireCooldown(ctx, rdb, "review:cooldown:5.6.7.8", time.Minute)
	assert.Error(t, err)
	assert.True(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquireCooldownWithoutRedis(t *testing.T) {
	ok, err := AcquireCooldown(context.Background(), nil, "k", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestGetRedisClientWithoutHost(t *testing.T) {
	NewRedisClient(nil)
	t.Setenv("REDIS_HOST", "")
	assert.Nil(t, GetRedisClient())
	assert.NoError(t, PingRedis(context.Background()))
}
