package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// TrendingKey is the single Redis key holding the trending payload.
const TrendingKey = "trending_movies"

var (
	// ErrCacheMiss is returned when no payload is stored.
	ErrCacheMiss = errors.New("cache miss")
	// ErrInvalidPayload is returned when a value to store is not valid JSON.
	ErrInvalidPayload = errors.New("payload is not valid JSON")
)

// GetTrending returns the stored trending payload byte-for-byte.
func (c *Cache) GetTrending(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, TrendingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trending payload: %w", err)
	}
	return data, nil
}

// SetTrending stores the upstream payload verbatim for ttl.
func (c *Cache) SetTrending(ctx context.Context, payload []byte, ttl time.Duration) error {
	if !json.Valid(payload) {
		return ErrInvalidPayload
	}
	if err := c.client.Set(ctx, TrendingKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set trending payload: %w", err)
	}
	return nil
}
