package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the minimum HMAC secret size accepted for signing tokens.
const MinSecretLength = 32

var (
	// ErrInvalidToken is returned for any token that fails signature, claim or format checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is wrapped together with ErrInvalidToken when only the expiry failed.
	ErrTokenExpired = errors.New("token expired")
	// ErrWrongTokenType is wrapped together with ErrInvalidToken when a refresh token
	// is presented as an access token or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
	// ErrWeakSecret is returned by NewTokenIssuer when the secret is too short.
	ErrWeakSecret = fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the JWT claims carried by both token types.
// Subject holds the user ID.
type Claims struct {
	Type TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenConfig configures a TokenIssuer.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Token is a signed token and the moment it stops being valid.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	Access  Token
	Refresh Token
}

// TokenIssuer signs and validates HS256 session tokens.
// Validation is pure: no I/O and no server-side session state.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer validates cfg and returns a TokenIssuer.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	return &TokenIssuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (i *TokenIssuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// IssuePair signs a new access and refresh token for userID.
func (i *TokenIssuer) IssuePair(userID string) (TokenPair, error) {
	access, err := i.sign(userID, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(userID, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess signs a new access token for userID.
func (i *TokenIssuer) IssueAccess(userID string) (Token, error) {
	return i.sign(userID, TokenTypeAccess, i.accessTTL)
}

// ParseAccess validates an access token and returns its claims.
func (i *TokenIssuer) ParseAccess(raw string) (*Claims, error) {
	return i.parse(raw, TokenTypeAccess)
}

// ParseRefresh validates a refresh token and returns its claims.
func (i *TokenIssuer) ParseRefresh(raw string) (*Claims, error) {
	return i.parse(raw, TokenTypeRefresh)
}

func (i *TokenIssuer) sign(userID string, typ TokenType, ttl time.Duration) (Token, error) {
	now := i.now().UTC()
	exp := now.Add(ttl)

	claims := &Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign %s token: %w", typ, err)
	}

	return Token{Value: signed, ExpiresAt: exp}, nil
}

func (i *TokenIssuer) parse(raw string, want TokenType) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Type != want {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrWrongTokenType)
	}

	return claims, nil
}
