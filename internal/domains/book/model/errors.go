package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound    = "BOOK001"
	ErrCodeNoVotesToRevise = "BOOK002"
	ErrCodeRatingConflict  = "BOOK003"
	ErrCodeISBNTaken       = "BOOK004"
	ErrCodeInvalidRating   = "BOOK005"
)

// Errors
var (
	ErrBookNotFound = errors.New("book not found")

	// ErrNoVotesToRevise is the precondition violation for a re-vote on a
	// book whose rates count is zero.
	ErrNoVotesToRevise = errors.New("cannot revise a vote on a book with no votes")

	// ErrRatingConflict signals a lost compare-and-swap on the book's
	// rating columns. The caller decides whether to retry.
	ErrRatingConflict = errors.New("concurrent rating update detected")

	ErrISBNTaken = errors.New("a book with this ISBN already exists")

	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// BookError custom error type
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewNoVotesToReviseError() *BookError {
	return &BookError{
		Code:    ErrCodeNoVotesToRevise,
		Message: "Cannot revise a vote on a book that has no votes",
		Err:     ErrNoVotesToRevise,
	}
}

func NewRatingConflictError() *BookError {
	return &BookError{
		Code:    ErrCodeRatingConflict,
		Message: "The rating was updated concurrently, please retry",
		Err:     ErrRatingConflict,
	}
}

func NewInvalidRatingError(rate int) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("Rating %d is out of range, must be between %d and %d", rate, MinRating, MaxRating),
		Err:     ErrInvalidRating,
	}
}
