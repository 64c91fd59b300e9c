package repository

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/user/model"
)

type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *model.User) error

	// GetByID gets a user by ID; model.ErrUnknownIdentity when absent
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername gets a user by username; model.ErrUnknownIdentity when absent
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetByEmail gets a user by email; model.ErrUnknownIdentity when absent
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
