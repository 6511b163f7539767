package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

var watchedKeys = map[string]bool{
	store.KeyUser:            true,
	store.KeySurveyCompleted: true,
	store.KeyUserProfile:     true,
}

// Watch calls fn with the current decision and then with every decision
// that differs from the previous one, until ctx is done. Bursts of changes
// are coalesced into a single re-evaluation. fn runs on the caller's
// goroutine and must not block for long.
//
// Watch returns ctx.Err() on cancellation, or an error if the first
// evaluation fails. Later evaluation failures are logged and skipped.
func (s *Service) Watch(ctx context.Context, profileID uuid.UUID, fn func(domain.Decision)) error {
	changed := make(chan struct{}, 1)
	unsubscribe := s.feed.Subscribe(profileID, func(ch store.Change) {
		if !watchedKeys[ch.Key] {
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	last, err := s.Decide(ctx, profileID)
	if err != nil {
		return fmt.Errorf("gate.Watch: %w", err)
	}
	fn(last)

	var resync <-chan time.Time
	if s.resync > 0 {
		t := time.NewTicker(s.resync)
		defer t.Stop()
		resync = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		case <-resync:
		}

		d, err := s.Decide(ctx, profileID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.WarnContext(ctx, "re-evaluating gate decision",
				slog.String("profile_id", profileID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if d.Equal(last) {
			continue
		}
		last = d
		fn(d)
	}
}
