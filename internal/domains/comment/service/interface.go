package service

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/comment/model"
)

type ServiceInterface interface {
	// Add creates a comment on a book
	Add(ctx context.Context, bookID, userID uuid.UUID, req model.AddCommentRequest) (*model.Comment, error)

	// ListForBook returns a book's comments. When viewer is non-empty each
	// comment's CanEdit is computed for that viewer; anonymous viewers get
	// CanEdit == false throughout.
	ListForBook(ctx context.Context, bookID uuid.UUID, viewer string) ([]*model.Comment, error)

	// EvaluateEditRights sets CanEdit on every comment for the viewer:
	// admins may edit anything, authors their own comments. Fails with
	// the identity store's unknown-identity error for unresolvable viewers.
	EvaluateEditRights(ctx context.Context, comments []*model.Comment, viewer string) error

	// Delete removes a comment if the caller may edit it
	Delete(ctx context.Context, commentID uuid.UUID, viewer string) error
}
