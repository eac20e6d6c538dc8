package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailpos/backend/internal/application/report"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "pos:"

// RedisReportCache implements report.Cache using Redis so that every API
// instance shares the same dashboard and report payloads
type RedisReportCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
	logger     *zap.Logger
}

// RedisReportCacheOption configures a RedisReportCache
type RedisReportCacheOption func(*RedisReportCache)

// WithKeyPrefix namespaces every key
func WithKeyPrefix(prefix string) RedisReportCacheOption {
	return func(c *RedisReportCache) {
		c.keyPrefix = prefix
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisReportCacheOption {
	return func(c *RedisReportCache) {
		c.logger = logger
	}
}

// NewRedisReportCache connects to Redis and verifies the connection
func NewRedisReportCache(ctx context.Context, cfg config.RedisConfig, opts ...RedisReportCacheOption) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisReportCacheWithClient(client, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisReportCacheWithClient wraps an existing client.
// The caller retains ownership of the client.
func NewRedisReportCacheWithClient(client *redis.Client, opts ...RedisReportCacheOption) *RedisReportCache {
	c := &RedisReportCache{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the cached payload for key into dest
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Dropping corrupted cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, c.keyPrefix+key)
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return true, nil
}

// Set stores value under key with ttl. A zero ttl keeps the key until deleted.
func (c *RedisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

// Delete removes the given keys
func (c *RedisReportCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.keyPrefix + key
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// Ping checks the Redis connection, used by the readiness probe
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the client when this cache created it
func (c *RedisReportCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

var _ report.Cache = (*RedisReportCache)(nil)
