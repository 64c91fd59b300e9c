package repository

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/comment/model"
)

type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID gets a comment by ID; model.ErrCommentNotFound when absent
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByBook lists a book's comments oldest first, with the author's
	// username and profile picture resolved
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Comment, error)

	// Delete removes a comment
	Delete(ctx context.Context, id uuid.UUID) error
}
