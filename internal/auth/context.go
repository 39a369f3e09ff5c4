package auth

import (
	"context"
	"sync/atomic"

	"github.com/cinefav/cinefav/internal/model"
)

type contextKey string

const (
	authContextKey contextKey = "auth_context"
	holderKey      contextKey = "auth_holder"
)

// Holder lets middleware that runs before authentication learn the caller
// once the request has been served.
type Holder struct {
	userID atomic.Value
}

// UserID returns the recorded user, or "".
func (h *Holder) UserID() string {
	if v, ok := h.userID.Load().(string); ok {
		return v
	}
	return ""
}

// ContextWithHolder attaches h to ctx.
func ContextWithHolder(ctx context.Context, h *Holder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

// ContextWithAuth adds AuthContext to the context and reports the user to
// any Holder already present.
func ContextWithAuth(ctx context.Context, auth *model.AuthContext) context.Context {
	if h, ok := ctx.Value(holderKey).(*Holder); ok && auth != nil {
		h.userID.Store(auth.UserID)
	}
	return context.WithValue(ctx, authContextKey, auth)
}

// AuthFromContext retrieves AuthContext from the context.
// Returns nil if not present.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	auth, ok := ctx.Value(authContextKey).(*model.AuthContext)
	if !ok {
		return nil
	}
	return auth
}

// UserIDFromContext returns the authenticated user ID, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	if auth := AuthFromContext(ctx); auth != nil {
		return auth.UserID
	}
	return ""
}
