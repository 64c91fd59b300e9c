package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUnknownIdentity    = "USR001"
	ErrCodeEmailTaken         = "USR002"
	ErrCodeUsernameTaken      = "USR003"
	ErrCodeInvalidCredentials = "USR004"
)

// Errors
var (
	// ErrUnknownIdentity means a username could not be resolved against
	// the identity store. Derived-permission computations fail with this
	// rather than guessing a default.
	ErrUnknownIdentity = errors.New("unknown identity")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserError custom error type
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func NewUnknownIdentityError(username string) *UserError {
	return &UserError{
		Code:    ErrCodeUnknownIdentity,
		Message: fmt.Sprintf("Unknown identity %q", username),
		Err:     ErrUnknownIdentity,
	}
}
