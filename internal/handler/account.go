package handler

import (
	"log/slog"
	"net/http"

	"github.com/cinefav/cinefav/internal/auth"
	"github.com/cinefav/cinefav/internal/handler/dto"
	"github.com/cinefav/cinefav/internal/service"
)

// AccountHandler handles signup, login, token refresh and profile requests.
type AccountHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		svc:    svc,
		logger: logger,
	}
}

// Signup handles POST /users/signup.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupInput
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.SignupResponse{
		Message: "User created successfully",
		User:    dto.ToUserResponse(user),
	})
}

// Login handles POST /users/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	pair, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Access:    pair.Access.Value,
		Refresh:   pair.Refresh.Value,
		TokenType: dto.TokenTypeBearer,
		ExpiresIn: int64(h.svc.AccessTTL().Seconds()),
	})
}

// Refresh handles POST /users/token/refresh.
func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	access, err := h.svc.Refresh(r.Context(), req.Refresh)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccessResponse{
		Access:    access.Value,
		TokenType: dto.TokenTypeBearer,
		ExpiresIn: int64(h.svc.AccessTTL().Seconds()),
	})
}

// Me handles GET /users/me.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Profile(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}
