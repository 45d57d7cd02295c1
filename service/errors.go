package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("your cart is empty")
	ErrNotAuthenticated   = errors.New("please log in to continue")
	ErrNotFound           = errors.New("not found")
	ErrRateLimited        = errors.New("too many login attempts, please try again later")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user already exists with this email")
)

// ValidationError reports a rejected input field with a message fit for the user
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
}
