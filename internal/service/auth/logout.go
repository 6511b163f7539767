package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

// Logout clears the user record and the survey flag. The stored survey
// profile is kept so the next demo login picks up the nickname again.
func (s *Service) Logout(ctx context.Context, profileID uuid.UUID) error {
	for _, key := range []string{store.KeyUser, store.KeySurveyCompleted} {
		if err := s.store.Delete(ctx, profileID, key); err != nil {
			return fmt.Errorf("auth.Logout delete %s: %w", key, err)
		}
	}

	s.drafts.Reset(profileID)

	s.log.InfoContext(ctx, "user logged out",
		slog.String("profile_id", profileID.String()))

	return nil
}
