package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseRatingJSON_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Rating
	}{
		{"number one decimal", `7.5`, 75},
		{"integer", `8`, 80},
		{"zero", `0`, 0},
		{"max", `99.9`, 999},
		{"string form", `"8.1"`, 81},
		{"string integer", `"10"`, 100},
		{"float literal trailing zero", `8.10`, 81},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRatingJSON([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ParseRatingJSON(%s) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseRatingJSON(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseRatingJSON_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"empty", ``, ErrRatingMissing},
		{"null", `null`, ErrRatingMissing},
		{"empty string", `""`, ErrRatingMissing},
		{"two decimals", `7.55`, ErrRatingFormat},
		{"two decimals string", `"7.50"`, ErrRatingFormat},
		{"word", `"great"`, ErrRatingFormat},
		{"bool", `true`, ErrRatingFormat},
		{"negative", `-1`, ErrRatingRange},
		{"too large", `100`, ErrRatingRange},
		{"object", `{}`, ErrRatingFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseRatingJSON([]byte(tt.raw))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseRatingJSON(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestRating_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating Rating
		want   string
	}{
		{75, "7.5"},
		{81, "8.1"},
		{80, "8"},
		{0, "0"},
		{999, "99.9"},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.rating)
		if err != nil {
			t.Fatalf("Marshal(%d) error = %v", tt.rating, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%d) = %s, want %s", tt.rating, got, tt.want)
		}
	}
}

func TestFavorite_JSONOmitsOwner(t *testing.T) {
	t.Parallel()

	fav := Favorite{ID: "01H", UserID: "user-1", MovieID: "42", Title: "Dune", Rating: 81}

	data, err := json.Marshal(fav)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if _, ok := decoded["user_id"]; ok {
		t.Error("favorite JSON should not expose the owner")
	}
	if decoded["rating"] != 8.1 {
		t.Errorf("rating = %v, want 8.1", decoded["rating"])
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q, want alice@example.com", got)
	}
}

func TestUser_PasswordHashNotSerialized(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(User{ID: "u1", Email: "a@x.com", PasswordHash: "$argon2id$secret"})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if strings.Contains(string(data), "argon2id") {
		t.Errorf("password hash leaked into JSON: %s", data)
	}
}
