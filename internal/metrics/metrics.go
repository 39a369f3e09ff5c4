// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Login outcomes passed to IncLogin.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory for tests.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Trending cache metrics
	IncTrendingCacheHit()
	IncTrendingCacheMiss()

	// Upstream provider metrics; status 0 means no response was received.
	ObserveUpstreamRequest(endpoint string, status int, duration time.Duration)

	// Account metrics
	IncSignup()
	IncLogin(result string)

	// Favorites metrics
	IncFavoriteAdded()
	IncFavoriteDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
