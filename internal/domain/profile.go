package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// StringSet is a set of strings that keeps insertion order for display and
// serialization.
type StringSet []string

// Contains reports whether v is in the set.
func (s StringSet) Contains(v string) bool {
	return slices.Contains(s, v)
}

// Len returns the number of elements.
func (s StringSet) Len() int { return len(s) }

// Toggle returns a new set with v removed if present, appended otherwise.
// The receiver is never modified.
func (s StringSet) Toggle(v string) StringSet {
	if s.Contains(v) {
		out := make(StringSet, 0, len(s)-1)
		for _, e := range s {
			if e != v {
				out = append(out, e)
			}
		}
		return out
	}
	out := make(StringSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

// Equal compares two sets ignoring order.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for _, v := range s {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the set. A nil set stays nil.
func (s StringSet) Clone() StringSet {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// MarshalJSON encodes an empty set as [] rather than null.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// UserProfile is the result of the onboarding survey
// (value of the "userProfile" session key).
type UserProfile struct {
	Nickname           string    `json:"nickname"`
	PrimaryLanguage    string    `json:"primaryLanguage"`
	Nationality        string    `json:"nationality"`
	CulturalBackground string    `json:"culturalBackground"`
	EmpathyGoals       StringSet `json:"empathyGoals"`
	Interests          StringSet `json:"interests"`
}

// DefaultProfile is the profile produced by skipping the survey.
func DefaultProfile() UserProfile {
	return UserProfile{
		Nickname:        "Guest",
		PrimaryLanguage: "English",
		Nationality:     "Global Citizen",
		EmpathyGoals:    StringSet{"cultural"},
		Interests:       StringSet{"Culture"},
	}
}

// ParseUserProfile decodes a stored profile.
func ParseUserProfile(raw string) (UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return UserProfile{}, fmt.Errorf("%w: userProfile: %v", ErrMalformedRecord, err)
	}
	return p, nil
}

// Encode returns the JSON form stored under the "userProfile" key.
func (p UserProfile) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return string(b), nil
}

// Clone returns a deep copy of the profile.
func (p UserProfile) Clone() UserProfile {
	p.EmpathyGoals = p.EmpathyGoals.Clone()
	p.Interests = p.Interests.Clone()
	return p
}

// MergeProfile folds a completed survey profile into a user record.
// Email and name always come from the record. A non-blank nickname
// becomes the display name and the nickname. Language, nationality, goals and interests are taken from the
// profile when set; cultural background is always taken from the profile.
// Neither argument is modified.
func MergeProfile(rec UserRecord, p UserProfile) UserRecord {
	out := rec.Clone()

	if nick := strings.TrimSpace(p.Nickname); nick != "" {
		out.DisplayName = nick
		out.Nickname = nick
	}
	if p.PrimaryLanguage != "" {
		out.PrimaryLanguage = p.PrimaryLanguage
	}
	if p.Nationality != "" {
		out.Nationality = p.Nationality
	}
	out.CulturalBackground = p.CulturalBackground
	if p.EmpathyGoals.Len() > 0 {
		out.EmpathyGoals = p.EmpathyGoals.Clone()
	}
	if p.Interests.Len() > 0 {
		out.Interests = p.Interests.Clone()
	}

	return out
}
