// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// User is an account that can log in and own favorites.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"` // Never serialize
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Emails are stored and looked up in this form so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthContext holds the authenticated caller for a request.
// This is injected into the request context by auth middleware.
type AuthContext struct {
	UserID  string
	TokenID string
}
