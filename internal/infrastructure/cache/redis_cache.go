package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"certificates-backend/pkg/cache"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements cache.Cache over a Redis connection, storing values
// as JSON.
type RedisCache struct {
	client *RedisClient
}

func NewRedisCache(host, password string, db int) cache.Cache {
	return &RedisCache{client: NewRedisClient(host, password, db)}
}

// Connect verifies the underlying connection; callers may skip it and let
// the first operation fail instead.
func (c *RedisCache) Connect(ctx context.Context) error {
	return c.client.Connect(ctx)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	if err := c.client.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}
