package auth

import (
	"fmt"
	"unicode/utf8"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

const (
	msgRequiredFields = "Please fill in all required fields"
	msgNameRequired   = "Please enter your name"
	msgPasswordLength = "Password must be at least %d characters long"
)

// LoginInput holds the demo login form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the form in the order the login page reports problems.
// Only the first failing rule is returned.
func (i LoginInput) Validate(minPasswordLength int) error {
	if err := requireCredentials(i.Email, i.Password); err != nil {
		return err
	}
	return checkPasswordLength(i.Password, minPasswordLength)
}

// SignUpInput holds the sign-up form.
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate checks required fields first, then the name, then password length.
func (i SignUpInput) Validate(minPasswordLength int) error {
	if err := requireCredentials(i.Email, i.Password); err != nil {
		return err
	}
	if i.Name == "" {
		return domain.NewValidationError("name", msgNameRequired)
	}
	return checkPasswordLength(i.Password, minPasswordLength)
}

func requireCredentials(email, password string) error {
	var errs []domain.FieldError

	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: msgRequiredFields})
	}
	if password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: msgRequiredFields})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func checkPasswordLength(password string, minLen int) error {
	if utf8.RuneCountInString(password) < minLen {
		return domain.NewValidationError("password", fmt.Sprintf(msgPasswordLength, minLen))
	}
	return nil
}
