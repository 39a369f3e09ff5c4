package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests        uint64
	TrendingCacheHits   uint64
	TrendingCacheMisses uint64
	UpstreamRequests    uint64
	UpstreamFailures    uint64
	Signups             uint64
	LoginSuccesses      uint64
	LoginFailures       uint64
	FavoritesAdded      uint64
	FavoritesDeleted    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	httpRequests        uint64
	trendingCacheHits   uint64
	trendingCacheMisses uint64
	upstreamRequests    uint64
	upstreamFailures    uint64
	signups             uint64
	loginSuccesses      uint64
	loginFailures       uint64
	favoritesAdded      uint64
	favoritesDeleted    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		HTTPRequests:        atomic.LoadUint64(&m.httpRequests),
		TrendingCacheHits:   atomic.LoadUint64(&m.trendingCacheHits),
		TrendingCacheMisses: atomic.LoadUint64(&m.trendingCacheMisses),
		UpstreamRequests:    atomic.LoadUint64(&m.upstreamRequests),
		UpstreamFailures:    atomic.LoadUint64(&m.upstreamFailures),
		Signups:             atomic.LoadUint64(&m.signups),
		LoginSuccesses:      atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:       atomic.LoadUint64(&m.loginFailures),
		FavoritesAdded:      atomic.LoadUint64(&m.favoritesAdded),
		FavoritesDeleted:    atomic.LoadUint64(&m.favoritesDeleted),
	}
}

// ObserveHTTPRequest counts served requests.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	atomic.AddUint64(&m.httpRequests, 1)
}

// IncTrendingCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncTrendingCacheHit() {
	atomic.AddUint64(&m.trendingCacheHits, 1)
}

// IncTrendingCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncTrendingCacheMiss() {
	atomic.AddUint64(&m.trendingCacheMisses, 1)
}

// ObserveUpstreamRequest counts provider calls; anything but 2xx is a failure.
func (m *InMemoryRecorder) ObserveUpstreamRequest(endpoint string, status int, duration time.Duration) {
	atomic.AddUint64(&m.upstreamRequests, 1)
	if status < 200 || status > 299 {
		atomic.AddUint64(&m.upstreamFailures, 1)
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the login counter for result.
func (m *InMemoryRecorder) IncLogin(result string) {
	if result == LoginSuccess {
		atomic.AddUint64(&m.loginSuccesses, 1)
		return
	}
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncFavoriteAdded increments favorite added counter.
func (m *InMemoryRecorder) IncFavoriteAdded() {
	atomic.AddUint64(&m.favoritesAdded, 1)
}

// IncFavoriteDeleted increments favorite deleted counter.
func (m *InMemoryRecorder) IncFavoriteDeleted() {
	atomic.AddUint64(&m.favoritesDeleted, 1)
}
