package handoff

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

const redisTestAddr = "localhost:6379"

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr:        redisTestAddr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", redisTestAddr, err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func cleanupKeys(t *testing.T, s *RedisStore, keys ...Key) {
	t.Helper()

	t.Cleanup(func() {
		for _, key := range keys {
			_ = s.rdb.Del(context.Background(), key.String()).Err()
		}
	})
}

func TestRedisStore_PutGet(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	key := Key{SessionID: "redis-put-get", Source: SourceCustomer}
	cleanupKeys(t, s, key, key.Other())

	data := formdata.New()
	data.Set(formdata.FieldApplicantName, "Tashi Wangmo")
	data.Seal(true)

	require.NoError(t, s.Put(ctx, key, data))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Tashi Wangmo", got.Get(formdata.FieldApplicantName))
	assert.True(t, got.IsVerified)
}

func TestRedisStore_PutClearsOppositeSource(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	ndiKey := Key{SessionID: "redis-opposite", Source: SourceNDI}
	customerKey := ndiKey.Other()
	cleanupKeys(t, s, ndiKey, customerKey)

	require.NoError(t, s.Put(ctx, ndiKey, formdata.New()))
	require.NoError(t, s.Put(ctx, customerKey, formdata.New()))

	_, err := s.Get(ctx, ndiKey)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, customerKey)
	assert.NoError(t, err)
}

func TestRedisStore_GetMissing(t *testing.T) {
	s := newTestRedisStore(t)

	_, err := s.Get(context.Background(), Key{SessionID: "redis-missing", Source: SourceNDI})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Clear(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	key := Key{SessionID: "redis-clear", Source: SourceCustomer}
	cleanupKeys(t, s, key, key.Other())

	require.NoError(t, s.Put(ctx, key, formdata.New()))
	require.NoError(t, s.Clear(ctx, key))

	_, err := s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}
