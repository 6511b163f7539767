package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the REST handlers mounted by Routes.
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Session *SessionHandler
	Survey  *SurveyHandler
}

// Routes mounts every endpoint. Probes run without a profile; everything
// else goes through profile, which resolves the caller's profile namespace.
func Routes(h Handlers, profile func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Group(func(r chi.Router) {
		r.Use(profile)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/signup", h.Auth.SignUp)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Get("/session", h.Session.Get)
		r.Get("/session/events", h.Session.Events)
		r.Get("/view", h.Session.View)

		r.Route("/survey", func(r chi.Router) {
			r.Get("/", h.Survey.State)
			r.Get("/options", h.Survey.Options)
			r.Post("/actions", h.Survey.Action)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
