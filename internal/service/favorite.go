package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"

	"github.com/cinefav/cinefav/internal/metrics"
	"github.com/cinefav/cinefav/internal/model"
	"github.com/cinefav/cinefav/internal/repository"
	"github.com/cinefav/cinefav/internal/validation"
)

// FavoriteService manages each user's favorite movies.
type FavoriteService struct {
	store   FavoriteStore
	metrics metrics.Recorder
	now     func() time.Time
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(store FavoriteStore, recorder metrics.Recorder) *FavoriteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FavoriteService{
		store:   store,
		metrics: recorder,
		now:     time.Now,
	}
}

// FavoriteInput defines input for saving a favorite.
// Rating is kept raw so both JSON numbers and numeric strings are accepted.
type FavoriteInput struct {
	MovieID  model.MovieRef  `json:"movie_id" validate:"required,max=255"`
	Title    string          `json:"title" validate:"required,max=255"`
	Overview string          `json:"overview" validate:"required"`
	Poster   string          `json:"poster" validate:"required,max=255"`
	Language string          `json:"language" validate:"required,max=50"`
	Rating   json.RawMessage `json:"rating" validate:"-"`
}

// Add saves a favorite owned by userID. Saving the same movie twice creates
// two entries.
func (s *FavoriteService) Add(ctx context.Context, userID string, input FavoriteInput) (*model.Favorite, error) {
	input.MovieID = model.MovieRef(strings.TrimSpace(string(input.MovieID)))

	fields := validation.Struct(input)
	rating, err := model.ParseRatingJSON(input.Rating)
	if err != nil {
		if fields == nil {
			fields = make(validation.FieldErrors)
		}
		fields["rating"] = ratingMessage(err)
	}
	if fields != nil {
		return nil, newValidationError("invalid favorite", fields)
	}

	fav := &model.Favorite{
		ID:        ulid.Make().String(),
		UserID:    userID,
		MovieID:   string(input.MovieID),
		Title:     input.Title,
		Overview:  input.Overview,
		Poster:    input.Poster,
		Language:  input.Language,
		Rating:    rating,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.store.CreateFavorite(ctx, fav); err != nil {
		if errors.Is(err, repository.ErrOwnerMissing) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	s.metrics.IncFavoriteAdded()
	return fav, nil
}

// List returns the favorites of userID, oldest first. Never nil.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*model.Favorite, error) {
	favorites, err := s.store.ListFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []*model.Favorite{}
	}
	return favorites, nil
}

// Delete removes favoriteID when it belongs to userID. Favorites of other
// users are reported as ErrFavoriteNotFound.
func (s *FavoriteService) Delete(ctx context.Context, userID, favoriteID string) error {
	if err := s.store.DeleteFavorite(ctx, userID, favoriteID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	s.metrics.IncFavoriteDeleted()
	return nil
}

func ratingMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrRatingMissing):
		return "This field is required."
	case errors.Is(err, model.ErrRatingRange):
		return "Ensure this value is between 0 and 99.9."
	default:
		return "A valid number with at most one decimal place is required."
	}
}
