package service

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	// Register creates an account with a bcrypt-hashed password
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)

	// Login verifies credentials and issues JWT tokens
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// Refresh exchanges a refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error)

	// GetProfile returns the account for an id
	GetProfile(ctx context.Context, id uuid.UUID) (*model.UserResponse, error)

	// GetByUsername resolves a username; model.ErrUnknownIdentity when absent
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// IsAdmin reports whether the username belongs to an admin.
	// Fails with model.ErrUnknownIdentity for unresolvable usernames.
	IsAdmin(ctx context.Context, username string) (bool, error)
}
