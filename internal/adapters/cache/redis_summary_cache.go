package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Area summaries change slowly; cache entries outlive any one session but
// not a neighborhood.
const summaryTTL = 24 * time.Hour

// RedisSummaryCache caches serialized area summaries keyed by a rounded
// coordinate, so nearby requests share one paid generative call.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryCache(addr string) (*RedisSummaryCache, error) {
	if addr == "" {
		return nil, errors.New("redis summary cache: addr is empty")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	return &RedisSummaryCache{client: client, ttl: summaryTTL}, nil
}

// Get returns the cached value for key, or (nil, nil) on a miss.
func (c *RedisSummaryCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("summary cache get %q: %w", key, err)
	}
	return val, nil
}

// Set stores value under key with the cache TTL.
func (c *RedisSummaryCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("summary cache set %q: %w", key, err)
	}
	return nil
}

// Close releases the client.
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}
