package cache

import (
	"context"
	"errors"
	"fmt"
	"medresilient-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "medresilient:lookup:"

// RedisLookupCache stores upstream lookup results in Redis with per-key expiry.
type RedisLookupCache struct {
	client *redis.Client
}

func NewRedisLookupCache(client *redis.Client) *RedisLookupCache {
	return &RedisLookupCache{client: client}
}

// NewRedisLookupCacheFromURL connects using a redis:// URL and verifies the connection.
func NewRedisLookupCacheFromURL(ctx context.Context, redisURL string) (*RedisLookupCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis lookup cache: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis lookup cache: ping: %w", err)
	}

	return &RedisLookupCache{client: client}, nil
}

func (r *RedisLookupCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "lookup.cache.redis.Get")(&err)

	value, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis lookup cache get key=%q: %w", key, err)
	}
	return value, true, nil
}

func (r *RedisLookupCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("redis lookup cache set key=%q: ttl must be positive", key)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis lookup cache set key=%q: %w", key, err)
	}
	return nil
}

func (r *RedisLookupCache) Close() error {
	return r.client.Close()
}
