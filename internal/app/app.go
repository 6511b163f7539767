package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/auth"
	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/realtime"
	authsvc "github.com/heartmarshall/mirrorme-backend/internal/service/auth"
	"github.com/heartmarshall/mirrorme-backend/internal/service/gate"
	"github.com/heartmarshall/mirrorme-backend/internal/service/survey"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
	"github.com/heartmarshall/mirrorme-backend/internal/transport/middleware"
	"github.com/heartmarshall/mirrorme-backend/internal/transport/rest"
)

// rateLimitCleanup is how often idle rate-limit buckets are dropped.
const rateLimitCleanup = time.Minute

// Run is the application entry point. It loads configuration, connects the
// session store and the broadcast bus, serves HTTP until ctx is cancelled
// and then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("bus", cfg.Bus.Driver),
	)

	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	// Open SSE streams never finish on their own.
	a.hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}

	logger.Info("application stopped")
	return nil
}

// application holds the wired components of a running instance.
type application struct {
	handler http.Handler
	hub     *realtime.Hub
	store   *store.Observable
	surveys *survey.Service

	cancel context.CancelFunc
	wg     sync.WaitGroup
	res    *resources
	limit  *middleware.RateLimiter
}

// build wires storage, the bus, the services and the HTTP handler, and
// starts the background workers. close releases everything.
func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	res := &resources{cfg: cfg, log: logger}
	defer func() {
		if err != nil {
			res.close()
		}
	}()

	storage, err := res.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	b, err := res.openBus(ctx)
	if err != nil {
		return nil, err
	}

	obs := store.NewObservable(logger, storage.Backend, b, uuid.NewString())

	workCtx, cancel := context.WithCancel(context.Background())
	if err := b.StartForwarder(workCtx, obs.Receive); err != nil {
		cancel()
		return nil, fmt.Errorf("start bus forwarder: %w", err)
	}

	gateSvc := gate.NewService(logger, obs, obs, storage.Tx, cfg.Gate)
	surveySvc := survey.NewService(logger, gateSvc, cfg.Survey)

	authService, err := authsvc.NewService(logger, obs, surveySvc, cfg.Auth)
	if err != nil {
		cancel()
		return nil, err
	}

	tokens := auth.NewProfileTokens(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.ProfileTokenTTL)
	hub := realtime.NewHub(logger, cfg.Server.SSEHeartbeat)
	limiter := middleware.NewRateLimiter(rateLimitCleanup)

	handlers := rest.Handlers{
		Health:  rest.NewHealthHandler(obs, storage.Driver, BuildVersion()),
		Auth:    rest.NewAuthHandler(authService, gateSvc, logger),
		Session: rest.NewSessionHandler(gateSvc, hub, logger),
		Survey:  rest.NewSurveyHandler(surveySvc, logger),
	}

	a := &application{
		handler: newHandler(cfg, logger, handlers, tokens, limiter),
		hub:     hub,
		store:   obs,
		surveys: surveySvc,
		cancel:  cancel,
		res:     res,
		limit:   limiter,
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		surveySvc.Run(workCtx)
	}()

	return a, nil
}

// close stops the background workers and releases the bus and the backend.
func (a *application) close() {
	a.cancel()
	a.wg.Wait()
	a.limit.Stop()
	a.res.close()
}
