package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cinefav/cinefav/internal/handler/dto"
	"github.com/cinefav/cinefav/internal/middleware"
	"github.com/cinefav/cinefav/internal/service"
	"github.com/cinefav/cinefav/internal/tmdb"
)

// writeServiceError maps service and upstream errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		validationErr *service.ValidationError
		statusErr     *tmdb.StatusError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   validationErr.Message,
			Code:    "VALIDATION_ERROR",
			Details: validationErr.Fields,
		})
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusBadRequest, "EMAIL_EXISTS", "Email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, service.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", `Bearer realm="cinefav", error="invalid_token"`)
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Token is invalid or expired")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrFavoriteNotFound):
		writeError(w, http.StatusNotFound, "FAVORITE_NOT_FOUND", "Favorite not found")
	case errors.As(err, &statusErr):
		logger.Warn("movie provider error",
			slog.String("endpoint", statusErr.Endpoint),
			slog.Int("upstream_status", statusErr.StatusCode),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, upstreamStatus(statusErr.StatusCode), "UPSTREAM_ERROR",
			fmt.Sprintf("Failed to fetch movies: %d", statusErr.StatusCode))
	case errors.Is(err, tmdb.ErrUnavailable), errors.Is(err, tmdb.ErrInvalidPayload):
		logger.Error("movie provider unavailable",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "External API request failed")
	default:
		logger.Error("internal_error",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

// upstreamStatus passes provider 4xx/5xx statuses through, except provider
// authentication failures, which become 502.
func upstreamStatus(code int) int {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden, code == http.StatusProxyAuthRequired:
		return http.StatusBadGateway
	case code >= 400 && code <= 599:
		return code
	default:
		return http.StatusBadGateway
	}
}
