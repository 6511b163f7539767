package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

// SignUp always succeeds once the form is valid. The given name becomes the
// display name and nickname. An existing user record is overwritten.
func (s *Service) SignUp(ctx context.Context, profileID uuid.UUID, input SignUpInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)

	// Step 1: Validate input
	if err := input.Validate(s.cfg.MinPasswordLength); err != nil {
		return nil, err
	}

	// Step 2: Simulated latency
	if err := s.wait(ctx, s.cfg.SimulatedDelay); err != nil {
		return nil, err
	}

	// Step 3: Persist
	user := domain.UserRecord{
		Email:       input.Email,
		Name:        input.Name,
		DisplayName: input.Name,
		Nickname:    input.Name,
	}
	if err := s.writeUser(ctx, profileID, user); err != nil {
		return nil, fmt.Errorf("auth.SignUp: %w", err)
	}

	s.log.InfoContext(ctx, "user signed up",
		slog.String("profile_id", profileID.String()))

	return &AuthResult{User: user, Message: msgSignUpSuccess}, nil
}
