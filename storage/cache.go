package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a base Slot with a Redis copy of the document so reads skip
// the slower backend. Writes go to the base first; the cached copy is
// refreshed best-effort and dropped whenever it cannot be trusted.
type Cache struct {
	base  Slot
	redis *redis.Client
	key   string
	ttl   time.Duration
}

// NewCache creates a caching wrapper around base using the provided Redis
// client and TTL. A zero TTL disables cache writes (reads still fall through
// to the base).
func NewCache(base Slot, client *redis.Client, key string, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base slot is nil")
	}
	if key == "" {
		key = DefaultKey
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, key: key, ttl: ttl}
}

func (c *Cache) Load(ctx context.Context) ([]byte, error) {
	if c.redis != nil {
		data, err := c.redis.Get(ctx, c.cacheKey()).Bytes()
		if err == nil && len(data) > 0 {
			return data, nil
		}
		if err != nil && err != redis.Nil {
			// On redis errors fall back to the base slot without failing.
			_ = c.redis.Del(ctx, c.cacheKey()).Err()
		}
	}
	data, err := c.base.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, data)
	return data, nil
}

func (c *Cache) Save(ctx context.Context, data []byte) error {
	if err := c.base.Save(ctx, data); err != nil {
		return err
	}
	c.store(ctx, data)
	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	if err := c.base.Clear(ctx); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *Cache) store(ctx context.Context, data []byte) {
	if c.redis == nil || c.ttl == 0 || len(data) == 0 {
		return
	}
	if err := c.redis.Set(ctx, c.cacheKey(), data, c.ttl).Err(); err != nil {
		c.evict(ctx)
	}
}

func (c *Cache) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, c.cacheKey()).Err()
}

func (c *Cache) cacheKey() string {
	return "cache:" + c.key
}
