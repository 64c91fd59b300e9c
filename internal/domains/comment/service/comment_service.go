package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/comment/model"
	"bookspace-backend/internal/domains/comment/repository"
	userService "bookspace-backend/internal/domains/user/service"
)

type commentService struct {
	commentRepo repository.CommentRepository
	users       userService.ServiceInterface
}

func NewCommentService(commentRepo repository.CommentRepository, users userService.ServiceInterface) ServiceInterface {
	return &commentService{
		commentRepo: commentRepo,
		users:       users,
	}
}

func (s *commentService) Add(ctx context.Context, bookID, userID uuid.UUID, req model.AddCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) ListForBook(ctx context.Context, bookID uuid.UUID, viewer string) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// Edit rights only mean something for an authenticated viewer;
	// anonymous readers keep the zero value.
	if viewer != "" {
		if err := s.EvaluateEditRights(ctx, comments, viewer); err != nil {
			return nil, err
		}
	}

	return comments, nil
}

func (s *commentService) EvaluateEditRights(ctx context.Context, comments []*model.Comment, viewer string) error {
	// The viewer is constant across the batch, so the admin flag is
	// resolved once per call, not once per comment.
	isAdmin, err := s.users.IsAdmin(ctx, viewer)
	if err != nil {
		return fmt.Errorf("failed to resolve viewer %q: %w", viewer, err)
	}

	for _, comment := range comments {
		comment.CanEdit = isAdmin || comment.Author == viewer
	}

	return nil
}

func (s *commentService) Delete(ctx context.Context, commentID uuid.UUID, viewer string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if err := s.EvaluateEditRights(ctx, []*model.Comment{comment}, viewer); err != nil {
		return err
	}
	if !comment.CanEdit {
		return model.ErrNotAllowed
	}

	return s.commentRepo.Delete(ctx, commentID)
}
