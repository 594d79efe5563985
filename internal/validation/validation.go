// Package validation holds the field-level rules applied before any
// persistence call. All functions are pure.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	domain "taskmanager/internal/domain/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

func ValidateSignup(fullName, email, password string) []FieldError {
	var errs []FieldError
	if len(strings.TrimSpace(fullName)) < 2 {
		errs = append(errs, FieldError{Field: "fullName", Message: domain.ErrInvalidName.Error()})
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		errs = append(errs, FieldError{Field: "email", Message: domain.ErrInvalidEmail.Error()})
	}
	errs = append(errs, validatePassword("password", password)...)
	return errs
}

func ValidateLogin(email, password string) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: domain.ErrInvalidEmail.Error()})
	}
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: domain.ErrShortPassword.Error()})
	}
	return errs
}

func ValidateTaskTitle(title string) *FieldError {
	if strings.TrimSpace(title) == "" {
		return &FieldError{Field: "title", Message: domain.ErrInvalidTitle.Error()}
	}
	return nil
}

// ValidateNewPassword applies the signup complexity rules to a password
// change.
func ValidateNewPassword(password string) []FieldError {
	return validatePassword("newPassword", password)
}

func validatePassword(field, password string) []FieldError {
	var errs []FieldError
	if len(password) < 8 {
		errs = append(errs, FieldError{Field: field, Message: domain.ErrShortPassword.Error()})
		return errs
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		errs = append(errs, FieldError{Field: field, Message: domain.ErrWeakPassword.Error()})
	}
	return errs
}
