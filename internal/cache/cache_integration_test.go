//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cinefav/cinefav/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	c, err := New(ctx, testutil.RedisURL(t), Options{PoolSize: 4})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := testutil.FlushRedis(ctx, c.client); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
	return ctx, c
}

func TestIntegrationTrending_MissThenHit(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if _, err := c.GetTrending(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss on empty cache, got %v", err)
	}

	payload := []byte(`{"page":1,"results":[{"id":550,"vote_average":8.4}]}`)
	if err := c.SetTrending(ctx, payload, time.Minute); err != nil {
		t.Fatalf("SetTrending failed: %v", err)
	}

	got, err := c.GetTrending(ctx)
	if err != nil {
		t.Fatalf("GetTrending failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("GetTrending = %s, want %s", got, payload)
	}

	ttl, err := c.client.TTL(ctx, TrendingKey).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected TTL %s", ttl)
	}
}

func TestIntegrationTrending_Expires(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if err := c.SetTrending(ctx, []byte(`{"results":[]}`), 100*time.Millisecond); err != nil {
		t.Fatalf("SetTrending failed: %v", err)
	}
	time.Sleep(300 * time.Millisecond)

	if _, err := c.GetTrending(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestIntegrationAuthRateLimit_Burst(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	const burst = 3
	for i := 0; i < burst; i++ {
		res, err := c.CheckAuthRateLimit(ctx, "203.0.113.7", 1, burst)
		if err != nil {
			t.Fatalf("CheckAuthRateLimit failed: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	res, err := c.CheckAuthRateLimit(ctx, "203.0.113.7", 1, burst)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit failed: %v", err)
	}
	if res.Allowed {
		t.Error("request past burst should be rejected")
	}
	if res.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %s", res.RetryAfter)
	}

	// Other clients keep their own bucket.
	other, err := c.CheckAuthRateLimit(ctx, "198.51.100.1", 1, burst)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit failed: %v", err)
	}
	if !other.Allowed {
		t.Error("a different IP should not be throttled")
	}
}
