package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinefav/cinefav/internal/service"
)

// MovieHandler serves provider payloads.
type MovieHandler struct {
	svc    *service.MovieService
	logger *slog.Logger
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{
		svc:    svc,
		logger: logger,
	}
}

// Trending handles GET /movies/trending.
func (h *MovieHandler) Trending(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Trending(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}

// Recommend handles GET /movies/recommend/{movieId}.
func (h *MovieHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Recommendations(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}
