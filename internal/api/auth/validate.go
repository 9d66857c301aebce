package auth

import (
	"regexp"
	"strings"
)

// FieldError is a single validation violation, one per failed field.
type FieldError struct {
	Path    string `json:"path" example:"email"`
	Message string `json:"message" example:"invalid email format"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	minPasswordLength = 8
	maxPasswordLength = 64
)

func validateRegister(req RegisterRequest) []FieldError {
	var errs []FieldError

	if len(strings.TrimSpace(req.Name)) < 2 {
		errs = append(errs, FieldError{Path: "name", Message: "name must be at least 2 characters long"})
	}
	errs = append(errs, validateEmail(req.Email)...)
	if len(req.Password) < minPasswordLength {
		errs = append(errs, FieldError{Path: "password", Message: "password must be at least 8 characters long"})
	} else if len(req.Password) > maxPasswordLength {
		errs = append(errs, FieldError{Path: "password", Message: "password must be at most 64 characters long"})
	}

	return errs
}

func validateLogin(req LoginRequest) []FieldError {
	var errs []FieldError

	errs = append(errs, validateEmail(req.Email)...)
	if len(req.Password) < minPasswordLength {
		errs = append(errs, FieldError{Path: "password", Message: "password must be at least 8 characters long"})
	}

	return errs
}

func validateEmail(email string) []FieldError {
	email = strings.TrimSpace(email)
	if email == "" {
		return []FieldError{{Path: "email", Message: "email is required"}}
	}
	if !emailRegex.MatchString(email) {
		return []FieldError{{Path: "email", Message: "invalid email format"}}
	}
	return nil
}
