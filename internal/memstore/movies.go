package memstore

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
)

// Movies is a scripted movie source that counts calls.
type Movies struct {
	mu sync.Mutex

	TrendingPayload json.RawMessage
	TrendingErr     error
	Recommended     map[int64]json.RawMessage
	RecommendErr    error

	TrendingCalls  int
	RecommendCalls int
}

// Trending returns TrendingPayload or TrendingErr.
func (m *Movies) Trending(ctx context.Context) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TrendingCalls++
	if m.TrendingErr != nil {
		return nil, m.TrendingErr
	}
	return m.TrendingPayload, nil
}

// Recommendations returns Recommended[movieID] (or an empty result list).
func (m *Movies) Recommendations(ctx context.Context, movieID int64) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecommendCalls++
	if m.RecommendErr != nil {
		return nil, m.RecommendErr
	}
	if payload, ok := m.Recommended[movieID]; ok {
		return payload, nil
	}
	return json.RawMessage(`{"page":1,"results":[]}`), nil
}

// Calls reports how many times each endpoint was hit.
func (m *Movies) Calls() (trending, recommend int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TrendingCalls, m.RecommendCalls
}
