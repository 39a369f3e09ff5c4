// Package dto defines the JSON shapes exchanged over HTTP.
package dto

import (
	"time"

	"github.com/cinefav/cinefav/internal/model"
)

// ErrorResponse is the error envelope of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a model.User to UserResponse.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// SignupResponse is returned by POST /users/signup.
type SignupResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// RefreshRequest is the body of POST /users/token/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// LoginResponse carries a fresh token pair.
type LoginResponse struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// AccessResponse carries a new access token.
type AccessResponse struct {
	Access    string `json:"access"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "Bearer"
