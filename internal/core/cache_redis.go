package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dataforge/gateway/internal/monitoring"
)

// RedisCache is the production Cache backend. Grounded in the
// network-logistics pack's pkg/cache/redis.go client setup, narrowed
// to the fabric's single CacheEntry schema and never-fails-loudly
// contract: every backend error is logged and turned into a miss
// rather than returned to the caller.
type RedisCache struct {
	client *redis.Client
	logger *monitoring.Logger
}

// RedisOptions configures the client connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// NewRedisCache dials Redis and verifies connectivity with a bounded
// ping before returning, mirroring the teacher's construction pattern.
func NewRedisCache(opts RedisOptions, logger *monitoring.Logger) (*RedisCache, error) {
	poolSize := opts.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: poolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &CacheError{Op: "ping", Message: err.Error(), Err: err}
	}

	return &RedisCache{client: client, logger: logger}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (CacheEntry, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache_get_failed")
		}
		return CacheEntry{}, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache_decode_failed")
		return CacheEntry{}, false
	}
	return entry, true
}

func (c *RedisCache) Set(ctx context.Context, key string, entry CacheEntry, ttlSeconds int) {
	blob, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache_encode_failed")
		return
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	if err := c.client.Set(ctx, key, blob, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache_set_failed")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, pattern string) error {
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return &CacheError{Op: "invalidate", Message: err.Error(), Err: err}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return &CacheError{Op: "invalidate", Message: err.Error(), Err: err}
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
