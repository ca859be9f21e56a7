// Package cache holds the explanation caches: Redis when configured, an
// in-process LRU otherwise.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// RedisCache stores JSON-encoded values with a fixed TTL. Failures are logged
// and reported as misses.
type RedisCache[V any] struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache[V any](client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *RedisCache[V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache[V]{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache[V]) Get(ctx context.Context, key string) (V, bool) {
	var v V
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache: redis get failed", zap.String("key", key), zap.Error(err))
		}
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		c.logger.Warn("cache: corrupt entry", zap.String("key", key), zap.Error(err))
		return v, false
	}
	return v, true
}

func (c *RedisCache[V]) Set(ctx context.Context, key string, value V) {
	b, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache: encode entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: redis set failed", zap.String("key", key), zap.Error(err))
	}
}
