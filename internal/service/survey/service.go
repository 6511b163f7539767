// Package survey runs the onboarding survey for a profile. Drafts live in
// memory only; nothing is written to the session store until the survey is
// completed or skipped.
package survey

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

// gate defines the onboarding gate operations needed by the survey service.
type gate interface {
	Decide(ctx context.Context, profileID uuid.UUID) (domain.Decision, error)
	CompleteSurvey(ctx context.Context, profileID uuid.UUID, profile domain.UserProfile) (domain.Decision, error)
}

type draft struct {
	mu     sync.Mutex
	survey *Survey

	touched time.Time // guarded by Service.mu
}

// Service keeps one survey draft per profile.
type Service struct {
	log        *slog.Logger
	gate       gate
	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time

	mu     sync.Mutex
	drafts map[uuid.UUID]*draft
}

// NewService creates a new survey service instance.
func NewService(logger *slog.Logger, g gate, cfg config.SurveyConfig) *Service {
	return &Service{
		log:        logger.With("service", "survey"),
		gate:       g,
		ttl:        cfg.DraftTTL,
		sweepEvery: cfg.SweepInterval,
		now:        time.Now,
		drafts:     make(map[uuid.UUID]*draft),
	}
}

// State is the externally visible survey state.
type State struct {
	Progress
	CanAdvance bool               `json:"canAdvance"`
	Draft      domain.UserProfile `json:"draft"`
}

func stateOf(s *Survey) State {
	return State{
		Progress:   s.Progress(),
		CanAdvance: s.CanAdvance(),
		Draft:      s.Draft(),
	}
}

// Current returns the profile's draft, starting an empty one if needed.
func (s *Service) Current(ctx context.Context, profileID uuid.UUID) (State, error) {
	if err := s.ensureActive(ctx, profileID); err != nil {
		return State{}, fmt.Errorf("survey.Current: %w", err)
	}

	d := s.draftFor(profileID)
	d.mu.Lock()
	defer d.mu.Unlock()
	return stateOf(d.survey), nil
}

// Reset drops the profile's draft, if any.
func (s *Service) Reset(profileID uuid.UUID) {
	s.mu.Lock()
	delete(s.drafts, profileID)
	s.mu.Unlock()
}

// Sweep evicts drafts idle since before now minus the TTL and returns how
// many were removed.
func (s *Service) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, d := range s.drafts {
		if d.touched.Before(cutoff) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle drafts periodically until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if s.sweepEvery <= 0 || s.ttl <= 0 {
		return
	}

	t := time.NewTicker(s.sweepEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.log.Info("evicted idle survey drafts", slog.Int("count", n))
			}
		}
	}
}

// DraftCount returns the number of drafts held in memory.
func (s *Service) DraftCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *Service) draftFor(profileID uuid.UUID) *draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[profileID]
	if !ok {
		d = &draft{survey: New()}
		s.drafts[profileID] = d
	}
	d.touched = s.now()
	return d
}

// ensureActive checks that the gate currently shows the survey. A draft of
// a profile that has left the survey is discarded.
func (s *Service) ensureActive(ctx context.Context, profileID uuid.UUID) error {
	dec, err := s.gate.Decide(ctx, profileID)
	if err != nil {
		return err
	}
	if dec.State == domain.GateSurvey {
		return nil
	}

	s.Reset(profileID)
	if !dec.Authenticated {
		return fmt.Errorf("%w: %w", ErrSurveyNotActive, domain.ErrUnauthorized)
	}
	return fmt.Errorf("%w: %w", ErrSurveyNotActive, domain.ErrConflict)
}
