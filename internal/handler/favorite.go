package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinefav/cinefav/internal/auth"
	"github.com/cinefav/cinefav/internal/service"
)

// FavoriteHandler handles the caller's favorite list.
type FavoriteHandler struct {
	svc    *service.FavoriteService
	logger *slog.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(svc *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /favorites.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

// Create handles POST /favorites.
func (h *FavoriteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.FavoriteInput
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	fav, err := h.svc.Add(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("favorite_created",
		"favorite_id", fav.ID,
		"movie_id", fav.MovieID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusCreated, fav)
}

// Delete handles DELETE /favorites/{id}.
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := auth.UserIDFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("favorite_deleted", "favorite_id", id, "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}
