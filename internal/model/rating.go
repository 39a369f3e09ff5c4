package model

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

// Rating bounds, in tenths. Matches a NUMERIC(3,1) column restricted to
// non-negative values.
const (
	MinRating Rating = 0
	MaxRating Rating = 999
)

var (
	// ErrRatingFormat indicates the value is not a number with at most one fractional digit.
	ErrRatingFormat = errors.New("rating must be a number with at most one decimal place")
	// ErrRatingRange indicates the value is outside 0.0-99.9.
	ErrRatingRange = errors.New("rating must be between 0 and 99.9")
	// ErrRatingMissing indicates no rating was supplied.
	ErrRatingMissing = errors.New("rating is required")
)

// ratingPattern accepts the textual form of a rating: up to two integer
// digits and an optional single fractional digit.
var ratingPattern = regexp.MustCompile(`^[0-9]{1,2}(\.[0-9])?$`)

// Rating is a movie score with exactly one decimal place of precision.
// It is held in tenths so 7.5 is stored as 75 and never drifts through
// float formatting.
type Rating int

// ParseRating parses the textual form of a rating such as "7.5" or "8".
func ParseRating(s string) (Rating, error) {
	if !ratingPattern.MatchString(s) {
		return 0, ErrRatingFormat
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrRatingFormat
	}
	return RatingFromFloat(f)
}

// RatingFromFloat converts a float to a Rating, rejecting values that
// carry more than one fractional digit.
func RatingFromFloat(f float64) (Rating, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrRatingFormat
	}
	tenths := math.Round(f * 10)
	if math.Abs(f*10-tenths) > 1e-6 {
		return 0, ErrRatingFormat
	}
	r := Rating(tenths)
	if r < MinRating || r > MaxRating {
		return 0, ErrRatingRange
	}
	return r, nil
}

// ParseRatingJSON parses a raw JSON value. Both numbers (7.5) and numeric
// strings ("7.5") are accepted; null or an empty value reports ErrRatingMissing.
func ParseRatingJSON(raw []byte) (Rating, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, ErrRatingMissing
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return 0, ErrRatingFormat
		}
		if s == "" {
			return 0, ErrRatingMissing
		}
		return ParseRating(s)
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, ErrRatingFormat
	}
	return RatingFromFloat(f)
}

// Float64 returns the rating as a float, e.g. 75 -> 7.5.
func (r Rating) Float64() float64 {
	return float64(r) / 10
}

// String formats the rating with the shortest exact representation.
func (r Rating) String() string {
	return strconv.FormatFloat(r.Float64(), 'f', -1, 64)
}

// MarshalJSON encodes the rating as a JSON number.
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalJSON accepts the same forms as ParseRatingJSON.
func (r *Rating) UnmarshalJSON(data []byte) error {
	parsed, err := ParseRatingJSON(data)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
