package cache

import (
	"context"
	"directions-route-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "directions:"

// RedisDirectionsCache stores raw Directions bodies with a Redis TTL.
type RedisDirectionsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisDirectionsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisDirectionsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisDirectionsCache{client: client, ttl: ttl, logger: logger}
}

func (r *RedisDirectionsCache) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, r.logger, "directions.cache.redis.Get")(&err)

	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errors.New("get directions cache: key must not be empty")
	}

	body, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get directions cache: redis get: %w", err)
	}

	return body, true, nil
}

func (r *RedisDirectionsCache) Put(ctx context.Context, key string, raw string) (err error) {
	defer obs.Time(ctx, r.logger, "directions.cache.redis.Put")(&err)

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert directions cache: key must not be empty")
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert directions cache key=%q: %w", key, err)
	}

	return nil
}
