package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinefav/cinefav/internal/model"
)

// UserStore persists accounts. Implemented by repository.Repository.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// FavoriteStore persists favorites. Implemented by repository.Repository.
type FavoriteStore interface {
	CreateFavorite(ctx context.Context, fav *model.Favorite) error
	ListFavoritesByUser(ctx context.Context, userID string) ([]*model.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, id string) error
}

// TrendingCache holds the raw trending payload. Implemented by cache.Cache.
type TrendingCache interface {
	GetTrending(ctx context.Context) ([]byte, error)
	SetTrending(ctx context.Context, payload []byte, ttl time.Duration) error
}

// MovieSource fetches payloads from the movie provider. Implemented by tmdb.Client.
type MovieSource interface {
	Trending(ctx context.Context) (json.RawMessage, error)
	Recommendations(ctx context.Context, movieID int64) (json.RawMessage, error)
}
