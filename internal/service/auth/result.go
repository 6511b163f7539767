package auth

import "github.com/heartmarshall/mirrorme-backend/internal/domain"

// AuthResult is returned by Login and SignUp.
type AuthResult struct {
	User    domain.UserRecord
	Message string
}

const (
	msgLoginSuccess  = "Login successful! Welcome back!"
	msgSignUpSuccess = "Account created successfully! Welcome to Mirror Me!"
)
