package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookspace-backend/internal/domains/book/model"
)

type BookRepository interface {
	// Create creates a new book
	Create(ctx context.Context, book *model.Book) error

	// GetByID gets a book by ID; model.ErrBookNotFound when absent or deleted
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Update updates catalog fields (not the rating columns)
	Update(ctx context.Context, book *model.Book) error

	// UpdateRating writes the new aggregate with a compare-and-swap on
	// the previous (rating, rates_count) pair. A lost race returns
	// model.ErrRatingConflict; the caller owns the retry policy.
	UpdateRating(ctx context.Context, book *model.Book, prevRating decimal.Decimal, prevCount int) error

	// Delete soft-deletes a book
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of books plus the total count
	List(ctx context.Context, page, limit int) ([]*model.Book, int, error)

	// Search finds books by title and/or author substring
	Search(ctx context.Context, filter string, titleOnly, authorOnly bool) ([]*model.Book, error)

	// SearchByGenre finds books linked to a genre whose name contains filter
	SearchByGenre(ctx context.Context, filter string) ([]*model.Book, error)

	// SearchByTag finds books linked to a tag whose value contains filter
	SearchByTag(ctx context.Context, filter string) ([]*model.Book, error)
}
