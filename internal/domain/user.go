package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UserRecord is the stored representation of the signed-in user
// (value of the "user" session key).
type UserRecord struct {
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	DisplayName        string    `json:"displayName,omitempty"`
	Nickname           string    `json:"nickname,omitempty"`
	Nationality        string    `json:"nationality,omitempty"`
	PrimaryLanguage    string    `json:"primaryLanguage,omitempty"`
	CulturalBackground string    `json:"culturalBackground,omitempty"`
	EmpathyGoals       StringSet `json:"empathyGoals,omitempty"`
	Interests          StringSet `json:"interests,omitempty"`
}

// ParseUserRecord decodes a stored user record. Anything that is not a JSON
// object with a non-empty email is reported as ErrMalformedRecord.
func ParseUserRecord(raw string) (UserRecord, error) {
	var rec UserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return UserRecord{}, fmt.Errorf("%w: user: %v", ErrMalformedRecord, err)
	}
	if strings.TrimSpace(rec.Email) == "" {
		return UserRecord{}, fmt.Errorf("%w: user: missing email", ErrMalformedRecord)
	}
	return rec, nil
}

// Encode returns the JSON form stored under the "user" key.
func (u UserRecord) Encode() (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	return string(b), nil
}

// DisplayLabel returns the name shown in the UI.
func (u UserRecord) DisplayLabel() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

// Clone returns a deep copy of the record.
func (u UserRecord) Clone() UserRecord {
	u.EmpathyGoals = u.EmpathyGoals.Clone()
	u.Interests = u.Interests.Clone()
	return u
}
