package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cinefav/cinefav/internal/auth"
	"github.com/cinefav/cinefav/internal/metrics"
	"github.com/cinefav/cinefav/internal/model"
	"github.com/cinefav/cinefav/internal/repository"
	"github.com/cinefav/cinefav/internal/validation"
)

// AccountService handles signup, login and token refresh.
type AccountService struct {
	users   UserStore
	hasher  *auth.PasswordHasher
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
	now     func() time.Time

	// dummyHash is verified for unknown emails to keep login timing uniform.
	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService.
func NewAccountService(users UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		metrics: recorder,
		now:     time.Now,
	}
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,max=1024"`
}

// LoginInput defines input for exchanging credentials for tokens.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup creates an active, non-staff account.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	input.Email = model.NormalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if fields := validation.Struct(input); fields != nil {
		return nil, newValidationError("invalid signup request", fields)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncSignup()
	return user, nil
}

// Login verifies credentials and issues an access/refresh pair.
// Unknown email, inactive account and wrong password all yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (auth.TokenPair, error) {
	if fields := validation.Struct(input); fields != nil {
		return auth.TokenPair{}, newValidationError("email and password are required", fields)
	}

	user, err := s.users.GetUserByEmail(ctx, model.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.burnVerify(input.Password)
			s.metrics.IncLogin(metrics.LoginFailure)
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok || !user.IsActive {
		s.metrics.IncLogin(metrics.LoginFailure)
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.metrics.IncLogin(metrics.LoginSuccess)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (auth.Token, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return auth.Token{}, newValidationError("refresh token is required", map[string]string{
			"refresh": "This field is required.",
		})
	}

	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return auth.Token{}, ErrInvalidToken
	}

	access, err := s.tokens.IssueAccess(claims.Subject)
	if err != nil {
		return auth.Token{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, nil
}

// Profile returns the account of userID.
func (s *AccountService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// AccessTTL reports the lifetime of issued access tokens.
func (s *AccountService) AccessTTL() time.Duration {
	return s.tokens.AccessTTL()
}

func (s *AccountService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
