package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/auth"
)

type loginService interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
}

// AuthHandler serves POST /api/auth/login.
type AuthHandler struct {
	svc loginService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc loginService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	session, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}
