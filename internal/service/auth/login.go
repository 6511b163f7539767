package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

// Login authenticates against the single demo account and stores the
// resulting user record in the profile namespace.
// Returns ErrInvalidCredentials on any mismatch; nothing is written then.
func (s *Service) Login(ctx context.Context, profileID uuid.UUID, input LoginInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.Email = strings.TrimSpace(input.Email)

	// Step 1: Validate input
	if err := input.Validate(s.cfg.MinPasswordLength); err != nil {
		return nil, err
	}

	// Step 2: Simulated latency
	if err := s.wait(ctx, s.cfg.SimulatedDelay); err != nil {
		return nil, err
	}

	// Step 3: Check credentials
	if input.Email != s.cfg.DemoEmail {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.demoHash, []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Step 4: Reuse the nickname of a previously completed survey
	name, err := s.storedNickname(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login read profile: %w", err)
	}
	if name == "" {
		name = s.cfg.DemoDisplayName
	}

	user := domain.UserRecord{
		Email:       input.Email,
		Name:        name,
		DisplayName: name,
		Nickname:    name,
	}

	// Step 5: Persist
	if err := s.writeUser(ctx, profileID, user); err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	s.log.InfoContext(ctx, "demo user logged in",
		slog.String("profile_id", profileID.String()))

	return &AuthResult{User: user, Message: msgLoginSuccess}, nil
}

// storedNickname returns the nickname of the stored survey profile, or ""
// when there is none. A malformed profile is treated as absent.
func (s *Service) storedNickname(ctx context.Context, profileID uuid.UUID) (string, error) {
	raw, err := s.store.Read(ctx, profileID, store.KeyUserProfile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	p, err := domain.ParseUserProfile(raw)
	if err != nil {
		s.log.WarnContext(ctx, "ignoring malformed stored profile",
			slog.String("profile_id", profileID.String()),
			slog.String("error", err.Error()))
		return "", nil
	}
	return strings.TrimSpace(p.Nickname), nil
}

func (s *Service) writeUser(ctx context.Context, profileID uuid.UUID, user domain.UserRecord) error {
	raw, err := user.Encode()
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, profileID, store.KeyUser, raw); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}
