package survey

import "errors"

// Conditions reported by the survey state machine. None of them changes
// the survey.
var (
	ErrStepIncomplete  = errors.New("survey: current step is incomplete")
	ErrFirstStep       = errors.New("survey: already on the first step")
	ErrSkipUnavailable = errors.New("survey: skip is only available on the first step")
	ErrSurveyNotActive = errors.New("survey: not active for this profile")
)
