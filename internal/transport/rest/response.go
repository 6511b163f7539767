package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/service/survey"
	"github.com/heartmarshall/mirrorme-backend/pkg/ctxutil"
)

// statusClientClosedRequest is reported when the caller went away before
// the response was ready.
const statusClientClosedRequest = 499

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error  string          `json:"error"`
	Fields []fieldResponse `json:"fields,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// handleError maps a service error to an HTTP response.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	ctx := r.Context()

	var valErr *domain.ValidationError
	switch {
	case errors.As(err, &valErr):
		resp := errorResponse{Error: valErr.Message()}
		for _, fe := range valErr.Errors {
			resp.Fields = append(resp.Fields, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, conflictMessage(err))
	case errors.Is(err, survey.ErrStepIncomplete),
		errors.Is(err, survey.ErrFirstStep),
		errors.Is(err, survey.ErrSkipUnavailable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled):
		log.DebugContext(ctx, "request cancelled by client",
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)))
		w.WriteHeader(statusClientClosedRequest)
	default:
		log.ErrorContext(ctx, "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func conflictMessage(err error) string {
	if errors.Is(err, survey.ErrSurveyNotActive) {
		return "survey already completed"
	}
	return "conflict"
}
