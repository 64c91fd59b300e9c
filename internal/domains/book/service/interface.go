package service

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/book/model"
)

type ServiceInterface interface {
	// CreateBook creates a book and links its taxonomy from the raw
	// genre/tag text
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)

	// GetBook returns the public book payload (cached)
	GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)

	// GetBookDetails returns the full book page for a viewer. viewer and
	// viewerID are empty/Nil for anonymous requests.
	GetBookDetails(ctx context.Context, id uuid.UUID, viewer string, viewerID uuid.UUID) (*model.BookDetailResponse, error)

	// UpdateBook updates catalog fields
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)

	// DeleteBook soft-deletes a book
	DeleteBook(ctx context.Context, id uuid.UUID) error

	// ListBooks returns a page of books plus the total count
	ListBooks(ctx context.Context, page, limit int) ([]*model.BookResponse, int, error)

	// SearchBooks finds books by the query's filter and field selector
	SearchBooks(ctx context.Context, q model.SearchQuery) ([]*model.BookResponse, error)

	// RateBook folds one vote into the book's aggregate rating. Whether
	// the voter is new is derived from their vote record, not trusted
	// from the caller. A lost write race surfaces model.ErrRatingConflict;
	// retrying is the caller's decision.
	RateBook(ctx context.Context, bookID, userID uuid.UUID, rate int) (*model.BookResponse, error)
}
