package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/pkg/ctxutil"
)

// ProfileTokenHeader carries the profile token on every response.
const ProfileTokenHeader = "X-Profile-Token"

// profileTokenQuery is accepted where headers cannot be set (EventSource).
const profileTokenQuery = "token"

type profileTokens interface {
	Issue(profileID uuid.UUID) (string, error)
	Validate(token string) (uuid.UUID, error)
}

// Profile resolves the browser profile a request belongs to. A valid token
// selects its profile; a missing or invalid one starts a new profile with a
// fresh token. Either way the token is echoed in X-Profile-Token and the
// profile ID is placed in the context.
func Profile(tokens profileTokens, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := extractProfileToken(r)
			profileID, err := uuid.Nil, error(nil)
			if token != "" {
				profileID, err = tokens.Validate(token)
				if err != nil {
					logger.DebugContext(ctx, "profile token rejected, starting new profile",
						slog.String("error", err.Error()),
						slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)))
				}
			}

			if token == "" || err != nil {
				profileID = uuid.New()
				token, err = tokens.Issue(profileID)
				if err != nil {
					logger.ErrorContext(ctx, "issue profile token",
						slog.String("error", err.Error()),
						slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)))
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
			}

			if h := profileHolderFromCtx(ctx); h != nil {
				h.set(profileID)
			}
			w.Header().Set(ProfileTokenHeader, token)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithProfileID(ctx, profileID)))
		})
	}
}

func extractProfileToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.URL.Query().Get(profileTokenQuery)
}

// profileHolder lets outer middleware see the profile resolved further in.
type profileHolder struct {
	mu sync.Mutex
	id uuid.UUID
}

func (h *profileHolder) set(id uuid.UUID) {
	h.mu.Lock()
	h.id = id
	h.mu.Unlock()
}

func (h *profileHolder) get() (uuid.UUID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id, h.id != uuid.Nil
}

type profileHolderKey struct{}

func withProfileHolder(ctx context.Context, h *profileHolder) context.Context {
	return context.WithValue(ctx, profileHolderKey{}, h)
}

func profileHolderFromCtx(ctx context.Context) *profileHolder {
	h, _ := ctx.Value(profileHolderKey{}).(*profileHolder)
	return h
}
