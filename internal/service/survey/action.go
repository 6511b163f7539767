package survey

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

// ActionType names a survey action.
type ActionType string

const (
	ActionSetNickname           ActionType = "set_nickname"
	ActionSetLanguage           ActionType = "set_language"
	ActionSetNationality        ActionType = "set_nationality"
	ActionSetCulturalBackground ActionType = "set_cultural_background"
	ActionToggleGoal            ActionType = "toggle_goal"
	ActionToggleInterest        ActionType = "toggle_interest"
	ActionNext                  ActionType = "next"
	ActionPrevious              ActionType = "previous"
	ActionSkip                  ActionType = "skip"
)

// Action is one user interaction with the survey.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value"`
}

// Outcome is the result of Apply. Exactly one of State or Decision is set.
type Outcome struct {
	State     *State           `json:"state,omitempty"`
	Completed bool             `json:"completed"`
	Decision  *domain.Decision `json:"decision,omitempty"`
}

// Apply performs action on the profile's draft. Finishing the last step or
// skipping hands the profile to the gate and discards the draft.
//
// Gating conditions (ErrStepIncomplete, ErrFirstStep, ErrSkipUnavailable)
// leave the draft as it was.
func (s *Service) Apply(ctx context.Context, profileID uuid.UUID, action Action) (*Outcome, error) {
	// Step 1: Only while the gate shows the survey
	if err := s.ensureActive(ctx, profileID); err != nil {
		return nil, fmt.Errorf("survey.Apply: %w", err)
	}

	d := s.draftFor(profileID)
	d.mu.Lock()
	defer d.mu.Unlock()

	// Step 2: Run the action against the state machine
	var (
		finished bool
		profile  domain.UserProfile
		err      error
	)
	sv := d.survey
	switch action.Type {
	case ActionSetNickname:
		err = sv.SetNickname(action.Value)
	case ActionSetLanguage:
		err = sv.SetPrimaryLanguage(action.Value)
	case ActionSetNationality:
		err = sv.SetNationality(action.Value)
	case ActionSetCulturalBackground:
		err = sv.SetCulturalBackground(action.Value)
	case ActionToggleGoal:
		err = sv.ToggleGoal(action.Value)
	case ActionToggleInterest:
		err = sv.ToggleInterest(action.Value)
	case ActionNext:
		finished, profile, err = sv.Next()
	case ActionPrevious:
		err = sv.Previous()
	case ActionSkip:
		profile, err = sv.Skip()
		finished = err == nil
	default:
		err = domain.NewValidationError("type", "Unknown survey action")
	}
	if err != nil {
		return nil, err
	}

	if !finished {
		st := stateOf(sv)
		return &Outcome{State: &st}, nil
	}

	// Step 3: Persist through the gate
	dec, err := s.gate.CompleteSurvey(ctx, profileID, profile)
	if err != nil {
		return nil, fmt.Errorf("survey.Apply complete: %w", err)
	}
	s.Reset(profileID)

	s.log.InfoContext(ctx, "survey finished",
		slog.String("profile_id", profileID.String()),
		slog.Bool("skipped", action.Type == ActionSkip))

	return &Outcome{Completed: true, Decision: &dec}, nil
}
