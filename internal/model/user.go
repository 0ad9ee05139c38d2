package model

import (
	"regexp"
	"time"
)

// MinPasswordLength matches the server's registration requirement.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the authenticated account returned by the backend.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FieldErrors maps form field names to user-facing messages.
type FieldErrors map[string]string

func (f FieldErrors) Empty() bool { return len(f) == 0 }

// ValidateLogin checks credentials before a login attempt.
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// ValidateRegistration checks credentials before a registration attempt.
func ValidateRegistration(email, password string) FieldErrors {
	errs := ValidateLogin(email, password)
	if password != "" && len(password) < MinPasswordLength {
		errs["password"] = "Password must be at least 8 characters"
	}
	return errs
}
