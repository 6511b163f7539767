package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/service/auth"
	"github.com/heartmarshall/mirrorme-backend/pkg/ctxutil"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Login(ctx context.Context, profileID uuid.UUID, input auth.LoginInput) (*auth.AuthResult, error)
	SignUp(ctx context.Context, profileID uuid.UUID, input auth.SignUpInput) (*auth.AuthResult, error)
	Logout(ctx context.Context, profileID uuid.UUID) error
}

// decider returns the current gate decision for a profile.
type decider interface {
	Decide(ctx context.Context, profileID uuid.UUID) (domain.Decision, error)
}

// AuthHandler serves the mock auth endpoints.
type AuthHandler struct {
	svc  authService
	gate decider
	log  *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, gate decider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, gate: gate, log: logger.With("handler", "auth")}
}

type authResponse struct {
	Message  string            `json:"message"`
	User     domain.UserRecord `json:"user"`
	Decision domain.Decision   `json:"decision"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req auth.LoginInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), profileID, req)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK, profileID, result)
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req auth.SignUpInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SignUp(r.Context(), profileID, req)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r, http.StatusCreated, profileID, result)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	if err := h.svc.Logout(r.Context(), profileID); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) respond(w http.ResponseWriter, r *http.Request, status int, profileID uuid.UUID, result *auth.AuthResult) {
	decision, err := h.gate.Decide(r.Context(), profileID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, status, authResponse{
		Message:  result.Message,
		User:     result.User,
		Decision: decision,
	})
}

// requireProfile returns the profile resolved by the Profile middleware.
func requireProfile(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ctxutil.ProfileIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing profile")
		return uuid.Nil, false
	}
	return id, true
}
