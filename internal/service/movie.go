package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cinefav/cinefav/internal/cache"
	"github.com/cinefav/cinefav/internal/metrics"
)

// DefaultTrendingTTL is how long a trending payload stays cached.
const DefaultTrendingTTL = time.Hour

// MovieService proxies the movie provider, memoizing the trending list.
type MovieService struct {
	source  MovieSource
	cache   TrendingCache
	ttl     time.Duration
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewMovieService creates a new MovieService.
func NewMovieService(source MovieSource, trending TrendingCache, ttl time.Duration, recorder metrics.Recorder, logger *slog.Logger) *MovieService {
	if ttl <= 0 {
		ttl = DefaultTrendingTTL
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieService{
		source:  source,
		cache:   trending,
		ttl:     ttl,
		metrics: recorder,
		logger:  logger,
	}
}

// Trending returns the trending payload, from cache when present.
// A failing cache degrades to a direct upstream call; upstream failures are
// returned as-is and never cached.
func (s *MovieService) Trending(ctx context.Context) ([]byte, error) {
	cached, err := s.cache.GetTrending(ctx)
	switch {
	case err == nil:
		s.metrics.IncTrendingCacheHit()
		return cached, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		s.logger.Warn("trending cache read failed", slog.String("error", err.Error()))
	}
	s.metrics.IncTrendingCacheMiss()

	payload, err := s.source.Trending(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}

	if err := s.cache.SetTrending(ctx, payload, s.ttl); err != nil {
		s.logger.Warn("trending cache write failed", slog.String("error", err.Error()))
	}

	return payload, nil
}

// Recommendations returns the provider's recommendations for rawID.
// rawID must be a positive decimal integer; it is checked before any upstream call.
func (s *MovieService) Recommendations(ctx context.Context, rawID string) ([]byte, error) {
	movieID, err := ParseMovieID(rawID)
	if err != nil {
		return nil, err
	}

	payload, err := s.source.Recommendations(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("fetch recommendations: %w", err)
	}
	return payload, nil
}

// ParseMovieID parses a provider movie id.
func ParseMovieID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 || raw[0] == '+' {
		return 0, newValidationError("invalid movie id", map[string]string{
			"movie_id": "A valid positive integer is required.",
		})
	}
	return id, nil
}
