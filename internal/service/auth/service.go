package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/mirrorme-backend/internal/config"
)

// sessionStore defines the session store operations needed by auth service.
type sessionStore interface {
	Read(ctx context.Context, profileID uuid.UUID, key string) (string, error)
	Write(ctx context.Context, profileID uuid.UUID, key, value string) error
	Delete(ctx context.Context, profileID uuid.UUID, key string) error
}

// draftResetter drops an in-progress survey draft.
type draftResetter interface {
	Reset(profileID uuid.UUID)
}

// Service implements the mock login, sign-up and logout flows.
type Service struct {
	log      *slog.Logger
	store    sessionStore
	drafts   draftResetter
	cfg      config.AuthConfig
	demoHash []byte
	wait     func(ctx context.Context, d time.Duration) error
}

// NewService creates a new auth service instance. The demo password is
// hashed once here and compared with bcrypt on every login.
func NewService(
	logger *slog.Logger,
	store sessionStore,
	drafts draftResetter,
	cfg config.AuthConfig,
) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.NewService hash demo password: %w", err)
	}

	return &Service{
		log:      logger.With("service", "auth"),
		store:    store,
		drafts:   drafts,
		cfg:      cfg,
		demoHash: hash,
		wait:     sleepCtx,
	}, nil
}

// sleepCtx blocks for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
