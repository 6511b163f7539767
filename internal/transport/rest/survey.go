package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/service/survey"
)

// surveyService defines the minimal interface needed by SurveyHandler.
type surveyService interface {
	Current(ctx context.Context, profileID uuid.UUID) (survey.State, error)
	Apply(ctx context.Context, profileID uuid.UUID, action survey.Action) (*survey.Outcome, error)
}

// SurveyHandler serves the onboarding survey endpoints.
type SurveyHandler struct {
	svc surveyService
	log *slog.Logger
}

// NewSurveyHandler creates a SurveyHandler.
func NewSurveyHandler(svc surveyService, logger *slog.Logger) *SurveyHandler {
	return &SurveyHandler{svc: svc, log: logger.With("handler", "survey")}
}

// State handles GET /survey.
func (h *SurveyHandler) State(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	st, err := h.svc.Current(r.Context(), profileID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Options handles GET /survey/options.
func (h *SurveyHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.SurveyCatalog())
}

type gatedResponse struct {
	Error string       `json:"error"`
	State survey.State `json:"state"`
}

// Action handles POST /survey/actions.
func (h *SurveyHandler) Action(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var action survey.Action
	if err := decodeJSON(w, r, &action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Apply(r.Context(), profileID, action)
	if err != nil {
		if isGated(err) {
			h.writeGated(w, r, profileID, err)
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	if out.Completed {
		writeJSON(w, http.StatusOK, out)
		return
	}
	writeJSON(w, http.StatusOK, out.State)
}

// writeGated reports a step condition together with the unchanged state.
func (h *SurveyHandler) writeGated(w http.ResponseWriter, r *http.Request, profileID uuid.UUID, cause error) {
	st, err := h.svc.Current(r.Context(), profileID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, gatedResponse{Error: cause.Error(), State: st})
}

func isGated(err error) bool {
	return errors.Is(err, survey.ErrStepIncomplete) ||
		errors.Is(err, survey.ErrFirstStep) ||
		errors.Is(err, survey.ErrSkipUnavailable)
}
