package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mirrorme-backend/internal/auth"
	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/transport/middleware"
	"github.com/heartmarshall/mirrorme-backend/internal/transport/rest"
)

// newHandler wraps the REST routes in the global middleware chain.
// Recovery is outermost so that panics anywhere below are turned into 500s.
func newHandler(
	cfg *config.Config,
	logger *slog.Logger,
	handlers rest.Handlers,
	tokens *auth.ProfileTokens,
	limiter *middleware.RateLimiter,
) http.Handler {
	routes := rest.Routes(handlers, middleware.Profile(tokens, logger))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMinute),
	)(routes)
}
