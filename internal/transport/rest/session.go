package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/realtime"
	"github.com/heartmarshall/mirrorme-backend/internal/router"
)

// EventDecision is the SSE event name for gate decisions.
const EventDecision = "decision"

// gateService defines the gate operations needed by SessionHandler.
type gateService interface {
	Decide(ctx context.Context, profileID uuid.UUID) (domain.Decision, error)
	Watch(ctx context.Context, profileID uuid.UUID, fn func(domain.Decision)) error
}

// eventHub defines the SSE hub operations needed by SessionHandler.
type eventHub interface {
	Register(profileID uuid.UUID) (*realtime.Client, error)
	Unregister(c *realtime.Client)
	Send(c *realtime.Client, name string, data any) bool
	Stream(w http.ResponseWriter, r *http.Request, c *realtime.Client) error
}

// SessionHandler exposes the onboarding gate.
type SessionHandler struct {
	gate gateService
	hub  eventHub
	log  *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(gate gateService, hub eventHub, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{gate: gate, hub: hub, log: logger.With("handler", "session")}
}

// Get handles GET /session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	d, err := h.gate.Decide(r.Context(), profileID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type viewResponse struct {
	router.Resolution
	Decision domain.Decision `json:"decision"`
}

// View handles GET /view?path=/x.
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	d, err := h.gate.Decide(r.Context(), profileID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		path = router.PathLanding
	}
	writeJSON(w, http.StatusOK, viewResponse{
		Resolution: router.ResolveDecision(path, d),
		Decision:   d,
	})
}

// Events handles GET /session/events: a server-sent event stream that
// emits the current decision and then every change of it.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	c, err := h.hub.Register(profileID)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}
	defer h.hub.Unregister(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		err := h.gate.Watch(ctx, profileID, func(d domain.Decision) {
			h.hub.Send(c, EventDecision, d)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			h.log.WarnContext(ctx, "decision watch ended",
				slog.String("profile_id", profileID.String()),
				slog.String("error", err.Error()))
			h.hub.Unregister(c)
		}
	}()

	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	if err := h.hub.Stream(w, r, c); err != nil {
		h.log.DebugContext(r.Context(), "sse stream closed",
			slog.String("profile_id", profileID.String()),
			slog.String("error", err.Error()))
	}
}
