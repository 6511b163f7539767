package survey

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

// Step indexes.
const (
	StepIdentity = iota
	StepLanguage
	StepGoals
	StepInterests
)

// TotalSteps is the number of survey steps.
const TotalSteps = 4

const (
	maxNicknameLength           = 64
	maxCulturalBackgroundLength = 128
)

type stepInfo struct {
	title    string
	subtitle string
}

var steps = [TotalSteps]stepInfo{
	StepIdentity:  {title: "Welcome to Mirror Me!", subtitle: "Let's personalize your empathy journey"},
	StepLanguage:  {title: "Language & Culture", subtitle: "Help us understand your background"},
	StepGoals:     {title: "Your Empathy Goals", subtitle: "What would you like to achieve?"},
	StepInterests: {title: "Your Interests", subtitle: "Help us tailor content to your preferences"},
}

// Progress describes the current step for display.
type Progress struct {
	Step     int    `json:"step"`
	Total    int    `json:"total"`
	Percent  int    `json:"percent"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Last     bool   `json:"last"`
}

// Survey is the four-step onboarding survey. It holds only the current step
// and the draft profile; persisting the result is the caller's job.
// A Survey is not safe for concurrent use.
type Survey struct {
	step  int
	draft domain.UserProfile
}

// New returns a survey on the first step with an empty draft.
func New() *Survey {
	return &Survey{}
}

// Step returns the zero-based current step.
func (s *Survey) Step() int { return s.step }

// Draft returns a copy of the answers collected so far.
func (s *Survey) Draft() domain.UserProfile { return s.draft.Clone() }

// CanAdvance reports whether the current step's answers are complete.
func (s *Survey) CanAdvance() bool {
	switch s.step {
	case StepIdentity:
		return strings.TrimSpace(s.draft.Nickname) != ""
	case StepLanguage:
		return s.draft.PrimaryLanguage != "" && s.draft.Nationality != ""
	case StepGoals:
		return s.draft.EmpathyGoals.Len() > 0
	case StepInterests:
		return s.draft.Interests.Len() > 0
	default:
		return true
	}
}

// Progress returns display information for the current step.
func (s *Survey) Progress() Progress {
	info := steps[s.step]
	return Progress{
		Step:     s.step,
		Total:    TotalSteps,
		Percent:  (s.step + 1) * 100 / TotalSteps,
		Title:    info.title,
		Subtitle: info.subtitle,
		Last:     s.step == TotalSteps-1,
	}
}

// Next advances one step. On the last step it reports completion with the
// draft and stays where it is. An incomplete step returns ErrStepIncomplete
// and changes nothing.
func (s *Survey) Next() (completed bool, profile domain.UserProfile, err error) {
	if !s.CanAdvance() {
		return false, domain.UserProfile{}, ErrStepIncomplete
	}
	if s.step == TotalSteps-1 {
		return true, s.draft.Clone(), nil
	}
	s.step++
	return false, domain.UserProfile{}, nil
}

// Previous goes back one step, keeping every answer.
func (s *Survey) Previous() error {
	if s.step == StepIdentity {
		return ErrFirstStep
	}
	s.step--
	return nil
}

// Skip abandons the survey from the first step and returns the default
// profile. The draft is ignored.
func (s *Survey) Skip() (domain.UserProfile, error) {
	if s.step != StepIdentity {
		return domain.UserProfile{}, ErrSkipUnavailable
	}
	return domain.DefaultProfile(), nil
}

// SetNickname stores the nickname as typed; blank input is allowed but does
// not satisfy the first step.
func (s *Survey) SetNickname(v string) error {
	if utf8.RuneCountInString(v) > maxNicknameLength {
		return domain.NewValidationError("nickname", "Nickname is too long")
	}
	s.draft.Nickname = v
	return nil
}

// SetPrimaryLanguage selects a language from the catalog. An empty value
// clears the selection.
func (s *Survey) SetPrimaryLanguage(v string) error {
	if v != "" && !domain.IsKnownLanguage(v) {
		return domain.NewValidationError("primaryLanguage", "Unknown language")
	}
	s.draft.PrimaryLanguage = v
	return nil
}

// SetNationality selects a nationality from the catalog. An empty value
// clears the selection.
func (s *Survey) SetNationality(v string) error {
	if v != "" && !domain.IsKnownNationality(v) {
		return domain.NewValidationError("nationality", "Unknown nationality")
	}
	s.draft.Nationality = v
	return nil
}

// SetCulturalBackground stores the optional free-text background.
func (s *Survey) SetCulturalBackground(v string) error {
	if utf8.RuneCountInString(v) > maxCulturalBackgroundLength {
		return domain.NewValidationError("culturalBackground", "Cultural background is too long")
	}
	s.draft.CulturalBackground = v
	return nil
}

// ToggleGoal adds or removes an empathy goal by ID.
func (s *Survey) ToggleGoal(id string) error {
	if !domain.IsKnownGoal(id) {
		return domain.NewValidationError("empathyGoals", "Unknown empathy goal")
	}
	s.draft.EmpathyGoals = s.draft.EmpathyGoals.Toggle(id)
	return nil
}

// ToggleInterest adds or removes an interest.
func (s *Survey) ToggleInterest(v string) error {
	if !domain.IsKnownInterest(v) {
		return domain.NewValidationError("interests", "Unknown interest")
	}
	s.draft.Interests = s.draft.Interests.Toggle(v)
	return nil
}
