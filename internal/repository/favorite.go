package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinefav/cinefav/internal/model"
	"github.com/jackc/pgx/v5"
)

// Errors for favorite repository operations.
var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrOwnerMissing is returned when the owning user row no longer exists.
	ErrOwnerMissing = errors.New("favorite owner does not exist")
)

// Ratings are stored as NUMERIC(3,1) and moved across the wire as integer
// tenths so no float rounding is involved.
const favoriteColumns = `id, user_id, movie_id, title, overview, poster, language, (rating * 10)::integer, created_at`

// CreateFavorite inserts a favorite for favorite.UserID.
func (r *Repository) CreateFavorite(ctx context.Context, fav *model.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, movie_id, title, overview, poster, language, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, ($8::integer / 10.0)::numeric(3,1), $9)
	`

	_, err := r.pool.Exec(ctx, query,
		fav.ID,
		fav.UserID,
		fav.MovieID,
		fav.Title,
		fav.Overview,
		fav.Poster,
		fav.Language,
		int(fav.Rating),
		fav.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrOwnerMissing
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

// ListFavoritesByUser returns every favorite owned by userID, oldest first.
// The result is never nil.
func (r *Repository) ListFavoritesByUser(ctx context.Context, userID string) ([]*model.Favorite, error) {
	query := `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*model.Favorite, 0)
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return favorites, nil
}

// DeleteFavorite removes a favorite owned by userID.
func (r *Repository) DeleteFavorite(ctx context.Context, userID, id string) error {
	query := `DELETE FROM favorites WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

func scanFavorite(row pgx.Row) (*model.Favorite, error) {
	var (
		fav    model.Favorite
		tenths int
	)
	err := row.Scan(
		&fav.ID,
		&fav.UserID,
		&fav.MovieID,
		&fav.Title,
		&fav.Overview,
		&fav.Poster,
		&fav.Language,
		&tenths,
		&fav.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	fav.Rating = model.Rating(tenths)
	return &fav, nil
}
