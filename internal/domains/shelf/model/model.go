package model

import (
	"time"

	"github.com/google/uuid"
)

// State is the collection a user filed a book under.
type State string

const (
	StateDefault          State = "default"
	StateRead             State = "read"
	StateCurrentlyReading State = "currently-reading"
	StateWishList         State = "wish-list"
)

func (s State) IsValid() bool {
	switch s {
	case StateDefault, StateRead, StateCurrentlyReading, StateWishList:
		return true
	}
	return false
}

func (s State) String() string {
	return string(s)
}

// BookUser is the per-(book, user) record. It carries the collection state
// and the user's vote: Rate is the integer vote value and HasRatedBook says
// whether a vote was ever cast. The book's aggregate rating is derived from
// these votes but never recomputed from them.
type BookUser struct {
	BookID uuid.UUID `json:"book_id" db:"book_id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`

	State        State `json:"state" db:"state"`
	Rate         int   `json:"rate" db:"rate"`
	HasRatedBook bool  `json:"has_rated_book" db:"has_rated_book"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ShelfBook is a book as listed on a user's shelf.
type ShelfBook struct {
	BookID   uuid.UUID `json:"book_id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	CoverURL *string   `json:"cover_url,omitempty"`
	State    State     `json:"state"`
}
