package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/redis/go-redis/v9"
)

// RedisCache shares cached order lists between CLI processes on one host.
// Values are JSON arrays stored with the configured TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to addr. Keys are namespaced by storeID.
func NewRedisCache(addr, storeID string, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: addr}), storeID, ttl)
}

func NewRedisCacheWithClient(client *redis.Client, storeID string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "storefront:" + storeID + ":orders:",
		ttl:    ttl,
	}
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

func (c *RedisCache) Get(ctx context.Context, key string) ([]models.Order, bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var list []models.Order
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false, fmt.Errorf("decode cached orders %s: %w", key, err)
	}
	return list, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, orders []models.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
