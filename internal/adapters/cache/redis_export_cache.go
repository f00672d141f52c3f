package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
	"water-quality-dashboard/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisExportCache keeps recent workbook exports in Redis with a fixed TTL.
type RedisExportCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisExportCache(client *redis.Client, ttl time.Duration) *RedisExportCache {
	return &RedisExportCache{Client: client, Prefix: "wqd:export:", TTL: ttl}
}

// Fetch a cached export. A missing key is reported as ok=false, not an error.
func (c *RedisExportCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "export.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("export cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get export cache: key must not be empty")
	}

	data, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get export cache key=%q: %w", key, err)
	}

	return data, true, nil
}

// Store an export, replacing any previous value and resetting its TTL.
func (c *RedisExportCache) Put(ctx context.Context, key string, data []byte) error {
	if c.Client == nil {
		return errors.New("export cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert export cache: key must not be empty")
	}

	if err := c.Client.Set(ctx, c.Prefix+key, data, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert export cache key=%q: %w", key, err)
	}

	return nil
}
