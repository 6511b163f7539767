// Package gate decides which top-level view a profile sees: the onboarding
// survey or the application.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

// sessionStore defines the session store operations needed by the gate.
type sessionStore interface {
	Read(ctx context.Context, profileID uuid.UUID, key string) (string, error)
	Write(ctx context.Context, profileID uuid.UUID, key, value string) error
}

// changeFeed delivers store mutations for a profile.
type changeFeed interface {
	Subscribe(profileID uuid.UUID, fn func(store.Change)) func()
	Defer(ctx context.Context) (context.Context, func())
}

// txManager defines the transaction manager interface needed by the gate.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the onboarding gate.
type Service struct {
	log    *slog.Logger
	store  sessionStore
	feed   changeFeed
	tx     txManager
	resync time.Duration
}

// NewService creates a new gate service instance.
func NewService(
	logger *slog.Logger,
	st sessionStore,
	feed changeFeed,
	tx txManager,
	cfg config.GateConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "gate"),
		store:  st,
		feed:   feed,
		tx:     tx,
		resync: cfg.ResyncInterval,
	}
}

// Initial is the decision before the store has been read.
func Initial() domain.Decision {
	return domain.Decision{State: domain.GateLoading}
}

// Decide reads the profile namespace once and returns the view to show.
// An absent or malformed user record means unauthenticated; the survey is
// shown only to an authenticated user whose survey flag is unset.
func (s *Service) Decide(ctx context.Context, profileID uuid.UUID) (domain.Decision, error) {
	user, ok, err := s.readUser(ctx, profileID)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("gate.Decide: %w", err)
	}
	if !ok {
		return domain.Decision{State: domain.GateApp}, nil
	}

	flag, err := s.store.Read(ctx, profileID, store.KeySurveyCompleted)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Decision{}, fmt.Errorf("gate.Decide read survey flag: %w", err)
	}

	state := domain.GateSurvey
	if flag == store.SurveyCompletedValue {
		state = domain.GateApp
	}
	return domain.Decision{State: state, Authenticated: true, User: &user}, nil
}

// readUser returns the stored user record. ok is false when the record is
// absent or cannot be decoded.
func (s *Service) readUser(ctx context.Context, profileID uuid.UUID) (domain.UserRecord, bool, error) {
	raw, err := s.store.Read(ctx, profileID, store.KeyUser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserRecord{}, false, nil
		}
		return domain.UserRecord{}, false, fmt.Errorf("read user: %w", err)
	}

	user, err := domain.ParseUserRecord(raw)
	if err != nil {
		s.log.WarnContext(ctx, "treating malformed user record as absent",
			slog.String("profile_id", profileID.String()),
			slog.String("error", err.Error()))
		return domain.UserRecord{}, false, nil
	}
	return user, true, nil
}
