// Package cache holds the Redis-backed state shared by API instances: the
// cached trending payload and the per-IP auth rate limit buckets.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// clientName tags cinefav connections in CLIENT LIST.
const clientName = "cinefav-api"

// Options tunes the Redis connection. Zero fields take DefaultOptions values.
type Options struct {
	PoolSize     int
	MinIdleConns int
	// OpTimeout bounds each read and write, so a stalled Redis surfaces as a
	// cache error and trending falls back to the upstream provider.
	OpTimeout time.Duration
}

// DefaultOptions sizes the pool for one API instance.
var DefaultOptions = Options{
	PoolSize:     10,
	MinIdleConns: 2,
	OpTimeout:    time.Second,
}

func (o Options) withDefaults() Options {
	if o.PoolSize <= 0 {
		o.PoolSize = DefaultOptions.PoolSize
	}
	if o.MinIdleConns < 0 || o.MinIdleConns > o.PoolSize {
		o.MinIdleConns = min(DefaultOptions.MinIdleConns, o.PoolSize)
	}
	if o.OpTimeout <= 0 {
		o.OpTimeout = DefaultOptions.OpTimeout
	}
	return o
}

// Cache stores trending payloads and rate limit buckets in Redis.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL and verifies the connection with a ping.
func New(ctx context.Context, redisURL string, opts Options) (*Cache, error) {
	ro, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts = opts.withDefaults()
	ro.ClientName = clientName
	ro.PoolSize = opts.PoolSize
	ro.MinIdleConns = opts.MinIdleConns
	ro.ReadTimeout = opts.OpTimeout
	ro.WriteTimeout = opts.OpTimeout
	ro.PoolTimeout = opts.OpTimeout + time.Second
	ro.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(ro)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping reports whether the trending cache is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
