package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/shelf/model"
	"bookspace-backend/internal/domains/shelf/repository"
)

type shelfService struct {
	shelfRepo repository.ShelfRepository
}

func NewShelfService(shelfRepo repository.ShelfRepository) ServiceInterface {
	return &shelfService{shelfRepo: shelfRepo}
}

func (s *shelfService) AddToShelf(ctx context.Context, bookID, userID uuid.UUID, state model.State) error {
	if !state.IsValid() {
		return model.ErrInvalidState
	}

	if err := s.shelfRepo.SetState(ctx, bookID, userID, state); err != nil {
		return fmt.Errorf("failed to add book to shelf: %w", err)
	}

	return nil
}

func (s *shelfService) RemoveFromShelf(ctx context.Context, bookID, userID uuid.UUID) error {
	return s.shelfRepo.Remove(ctx, bookID, userID)
}

func (s *shelfService) ListShelf(ctx context.Context, userID uuid.UUID, state model.State) ([]*model.ShelfBook, error) {
	if !state.IsValid() {
		return nil, model.ErrInvalidState
	}

	return s.shelfRepo.ListBooks(ctx, userID, state)
}
