package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeEntityNotFound = "TAX001"
	ErrCodeInvalidKind    = "TAX002"
)

// Errors
var (
	ErrEntityNotFound = errors.New("canonical entity not found")
	ErrInvalidKind    = errors.New("invalid entity kind")
)

// TaxonomyError custom error type
type TaxonomyError struct {
	Code    string
	Message string
	Err     error
}

func (e *TaxonomyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TaxonomyError) Unwrap() error {
	return e.Err
}

func NewInvalidKindError(kind string) *TaxonomyError {
	return &TaxonomyError{
		Code:    ErrCodeInvalidKind,
		Message: fmt.Sprintf("Invalid entity kind %q", kind),
		Err:     ErrInvalidKind,
	}
}
