package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisTTL is how long an untouched cart lives in redis
const DefaultRedisTTL = 30 * 24 * time.Hour

// RedisStore keeps snapshots in redis under cart:<visitor>. Each save renews
// the TTL.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore; ttl <= 0 uses DefaultRedisTTL
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, visitorID string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKey(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return data, nil
}

func (r *RedisStore) Save(ctx context.Context, visitorID string, snapshot []byte) error {
	if err := r.client.Set(ctx, redisKey(visitorID), snapshot, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, visitorID string) error {
	if err := r.client.Del(ctx, redisKey(visitorID)).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func redisKey(visitorID string) string {
	return fmt.Sprintf("cart:%s", visitorID)
}
