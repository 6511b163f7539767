package domain

// GateState is the top-level view selected by the onboarding gate.
type GateState string

const (
	GateLoading GateState = "loading"
	GateSurvey  GateState = "survey"
	GateApp     GateState = "app"
)

// Decision is the output of the onboarding gate.
type Decision struct {
	State         GateState   `json:"state"`
	Authenticated bool        `json:"authenticated"`
	User          *UserRecord `json:"user,omitempty"`
}

// Equal reports whether two decisions would render the same view for the
// same user.
func (d Decision) Equal(o Decision) bool {
	if d.State != o.State || d.Authenticated != o.Authenticated {
		return false
	}
	switch {
	case d.User == nil && o.User == nil:
		return true
	case d.User == nil || o.User == nil:
		return false
	}
	a, b := d.User, o.User
	return a.Email == b.Email &&
		a.Name == b.Name &&
		a.DisplayName == b.DisplayName &&
		a.Nickname == b.Nickname &&
		a.Nationality == b.Nationality &&
		a.PrimaryLanguage == b.PrimaryLanguage &&
		a.CulturalBackground == b.CulturalBackground &&
		a.EmpathyGoals.Equal(b.EmpathyGoals) &&
		a.Interests.Equal(b.Interests)
}
