package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
)

const defaultTTL = 30 * time.Minute

// RedisStore keeps hand-off data in Redis with a TTL approximating the
// lifetime of one wizard tab session.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "handoff")),
	}
}

func (s *RedisStore) Put(ctx context.Context, key Key, data formdata.CanonicalFormData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal handoff data: %w", err)
	}

	// the opposite path's result is stale the moment this one lands;
	// write and clear in one transaction so exactly one key survives
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key.String(), payload, s.ttl)
		pipe.Del(ctx, key.Other().String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("write handoff key %s: %w", key, err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, key Key) (formdata.CanonicalFormData, error) {
	payload, err := s.rdb.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return formdata.CanonicalFormData{}, ErrNotFound
	}
	if err != nil {
		return formdata.CanonicalFormData{}, fmt.Errorf("read handoff key %s: %w", key, err)
	}

	var data formdata.CanonicalFormData
	if err := json.Unmarshal(payload, &data); err != nil {
		return formdata.CanonicalFormData{}, fmt.Errorf("decode handoff key %s: %w", key, err)
	}

	return data, nil
}

func (s *RedisStore) Clear(ctx context.Context, key Key) error {
	if err := s.rdb.Del(ctx, key.String()).Err(); err != nil {
		return fmt.Errorf("clear handoff key %s: %w", key, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
