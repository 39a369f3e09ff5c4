package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cinefav/cinefav/internal/auth"
	"github.com/cinefav/cinefav/internal/model"
)

// AccessTokenParser validates access tokens. Implemented by auth.TokenIssuer.
type AccessTokenParser interface {
	ParseAccess(raw string) (*auth.Claims, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens AccessTokenParser
}

// RequireAuth rejects requests without a valid access token and injects the
// caller into the request context. Validation is pure; no store is consulted.
func RequireAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "", "Authentication credentials were not provided")
				return
			}

			claims, err := cfg.Tokens.ParseAccess(raw)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired_token"
				}
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "invalid_token", "Token is invalid or expired")
				return
			}

			ctx := auth.ContextWithAuth(r.Context(), &model.AuthContext{
				UserID:  claims.Subject,
				TokenID: claims.ID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// writeAuthError writes a 401 with an RFC 6750 challenge.
func writeAuthError(w http.ResponseWriter, errCode, message string) {
	challenge := `Bearer realm="cinefav"`
	if errCode != "" {
		challenge += `, error="` + errCode + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}
