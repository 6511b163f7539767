package gate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

// CompleteSurvey persists a finished survey: the profile itself, the
// completion flag and the user record merged with the profile. The profile
// is stored as given. Watchers are notified once the writes have committed.
func (s *Service) CompleteSurvey(ctx context.Context, profileID uuid.UUID, profile domain.UserProfile) (domain.Decision, error) {
	ctx, flush := s.feed.Defer(ctx)
	defer flush()

	var merged domain.UserRecord
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// Step 1: Store the profile
		raw, err := profile.Encode()
		if err != nil {
			return err
		}
		if err := s.store.Write(ctx, profileID, store.KeyUserProfile, raw); err != nil {
			return fmt.Errorf("write profile: %w", err)
		}

		// Step 2: Set the completion flag
		if err := s.store.Write(ctx, profileID, store.KeySurveyCompleted, store.SurveyCompletedValue); err != nil {
			return fmt.Errorf("write survey flag: %w", err)
		}

		// Step 3: Merge into the user record
		user, _, err := s.readUser(ctx, profileID)
		if err != nil {
			return err
		}
		merged = domain.MergeProfile(user, profile)

		rawUser, err := merged.Encode()
		if err != nil {
			return err
		}
		if err := s.store.Write(ctx, profileID, store.KeyUser, rawUser); err != nil {
			return fmt.Errorf("write user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Decision{}, fmt.Errorf("gate.CompleteSurvey: %w", err)
	}

	s.log.InfoContext(ctx, "survey completed",
		slog.String("profile_id", profileID.String()))

	return domain.Decision{State: domain.GateApp, Authenticated: true, User: &merged}, nil
}
