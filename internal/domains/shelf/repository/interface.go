package repository

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/shelf/model"
)

type ShelfRepository interface {
	// Get returns the record for (book, user); model.ErrNotOnShelf when absent
	Get(ctx context.Context, bookID, userID uuid.UUID) (*model.BookUser, error)

	// SetState files a book under a collection state, creating the record
	// if needed without touching the vote columns
	SetState(ctx context.Context, bookID, userID uuid.UUID, state model.State) error

	// RecordVote stores the user's vote, creating the record if needed
	RecordVote(ctx context.Context, bookID, userID uuid.UUID, rate int) error

	// Remove drops the record
	Remove(ctx context.Context, bookID, userID uuid.UUID) error

	// ListBooks returns the user's shelf filtered by state
	ListBooks(ctx context.Context, userID uuid.UUID, state model.State) ([]*model.ShelfBook, error)
}
