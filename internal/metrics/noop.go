package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}

// IncTrendingCacheHit is a no-op.
func (n *NoopRecorder) IncTrendingCacheHit() {}

// IncTrendingCacheMiss is a no-op.
func (n *NoopRecorder) IncTrendingCacheMiss() {}

// ObserveUpstreamRequest is a no-op.
func (n *NoopRecorder) ObserveUpstreamRequest(endpoint string, status int, duration time.Duration) {}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(result string) {}

// IncFavoriteAdded is a no-op.
func (n *NoopRecorder) IncFavoriteAdded() {}

// IncFavoriteDeleted is a no-op.
func (n *NoopRecorder) IncFavoriteDeleted() {}
