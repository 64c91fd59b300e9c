package repository

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/taxonomy/model"
)

// Store is the persistence contract for canonical entities and their
// book links. Genres live in the genres table (label column "name"),
// tags in the tags table (label column "value").
type Store interface {
	// FindByLabel looks up an entity by exact, case-sensitive label.
	// Returns model.ErrEntityNotFound when absent.
	FindByLabel(ctx context.Context, kind model.Kind, label string) (*model.Entity, error)

	// Create persists a new entity. When a concurrent writer already
	// created the same label, the entity adopts the winning row's id
	// instead of producing a duplicate.
	Create(ctx context.Context, entity *model.Entity) error

	// CreateLink records a book↔entity association.
	CreateLink(ctx context.Context, bookID uuid.UUID, entityID string, kind model.Kind) error

	// ListByBook returns all entities of a kind linked to a book,
	// ordered by label.
	ListByBook(ctx context.Context, bookID uuid.UUID, kind model.Kind) ([]*model.Entity, error)
}
