package model

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Favorite is a movie a user has saved to their list.
// The same movie may be saved more than once by the same user.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	MovieID   string    `json:"movie_id"`
	Title     string    `json:"title"`
	Overview  string    `json:"overview"`
	Poster    string    `json:"poster"`
	Language  string    `json:"language"`
	Rating    Rating    `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrMovieRefType indicates a movie_id that is neither a string nor a number.
var ErrMovieRefType = errors.New("movie_id must be a string or a number")

// MovieRef is a movie id as sent by clients. Provider ids usually arrive as
// JSON numbers; they are kept as their decimal text.
type MovieRef string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (m *MovieRef) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*m = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return ErrMovieRefType
		}
		*m = MovieRef(s)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return ErrMovieRefType
	}
	*m = MovieRef(raw)
	return nil
}
