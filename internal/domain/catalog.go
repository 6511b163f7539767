package domain

import "slices"

// Option is a selectable catalog entry.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog lists the fixed choices offered by the onboarding survey.
type Catalog struct {
	Languages     []string `json:"languages"`
	Nationalities []string `json:"nationalities"`
	EmpathyGoals  []Option `json:"empathyGoals"`
	Interests     []string `json:"interests"`
}

var (
	languages = []string{
		"English", "Spanish", "Mandarin", "Hindi", "Arabic", "Portuguese",
		"Bengali", "Russian", "Japanese", "German", "French", "Korean",
		"Italian", "Turkish", "Vietnamese", "Thai", "Other",
	}

	nationalities = []string{
		"United States", "China", "India", "Brazil", "Nigeria", "Indonesia",
		"Pakistan", "Bangladesh", "Russia", "Mexico", "Japan", "Germany",
		"Philippines", "Egypt", "United Kingdom", "France", "Italy",
		"South Korea", "Spain", "Canada", "Australia", "Other",
	}

	empathyGoals = []Option{
		{ID: "cultural", Label: "Understand different cultures"},
		{ID: "communication", Label: "Improve cross-cultural communication"},
		{ID: "relationships", Label: "Build stronger relationships"},
		{ID: "conflict", Label: "Resolve conflicts better"},
		{ID: "business", Label: "Enhance business interactions"},
		{ID: "personal", Label: "Personal growth and awareness"},
	}

	interests = []string{
		"Art & Culture", "Business", "Education", "Technology",
		"Health & Wellness", "Travel", "Philosophy", "Psychology", "History",
		"Literature", "Music", "Social Justice", "Environment", "Politics",
		"Science",
	}
)

// SurveyCatalog returns a copy of the survey catalog.
func SurveyCatalog() Catalog {
	return Catalog{
		Languages:     slices.Clone(languages),
		Nationalities: slices.Clone(nationalities),
		EmpathyGoals:  slices.Clone(empathyGoals),
		Interests:     slices.Clone(interests),
	}
}

func IsKnownLanguage(v string) bool    { return slices.Contains(languages, v) }
func IsKnownNationality(v string) bool { return slices.Contains(nationalities, v) }
func IsKnownInterest(v string) bool    { return slices.Contains(interests, v) }

func IsKnownGoal(id string) bool {
	return slices.ContainsFunc(empathyGoals, func(o Option) bool { return o.ID == id })
}
