package service

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/shelf/model"
)

type ServiceInterface interface {
	// AddToShelf files a book under a collection state for the user
	AddToShelf(ctx context.Context, bookID, userID uuid.UUID, state model.State) error

	// RemoveFromShelf drops the book from the user's shelf
	RemoveFromShelf(ctx context.Context, bookID, userID uuid.UUID) error

	// ListShelf returns the user's books in a collection state
	ListShelf(ctx context.Context, userID uuid.UUID, state model.State) ([]*model.ShelfBook, error)
}
