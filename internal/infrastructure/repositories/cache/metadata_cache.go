package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// MetadataCache stores version lists keyed by artifact coordinate.
type MetadataCache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, versions []string, ttl time.Duration) error
	Close() error
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() *NullCache { return &NullCache{} }

func (c *NullCache) Get(context.Context, string) ([]string, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []string, time.Duration) error { return nil }

func (c *NullCache) Close() error { return nil }

// RedisCache shares version lists between runs and machines.
type RedisCache struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisCache connects to the Redis server at url ("redis://host:6379/0").
func NewRedisCache(url, namespace string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid redis url %q", url)
	}
	return NewRedisCacheWithClient(redis.NewClient(opts), namespace), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, namespace string) *RedisCache {
	return &RedisCache{client: client, namespace: namespace}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read %s from redis", key)
	}

	var versions []string
	if err = json.Unmarshal(raw, &versions); err != nil {
		return nil, false, errors.Wrapf(err, "corrupt cache entry %s", key)
	}
	return versions, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, versions []string, ttl time.Duration) error {
	raw, err := json.Marshal(versions)
	if err != nil {
		return errors.Wrap(err, "failed to encode versions")
	}
	if err = c.client.Set(ctx, c.namespace+key, raw, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to write %s to redis", key)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
