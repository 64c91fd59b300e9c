package service

import (
	"context"

	"github.com/google/uuid"

	"bookspace-backend/internal/domains/taxonomy/model"
)

type ServiceInterface interface {
	// SplitLabels splits raw delimited text into individual labels.
	// Absent input yields an empty sequence, never an error.
	SplitLabels(raw string) []string

	// Resolve returns the canonical entity for a label, creating it on
	// first reference.
	Resolve(ctx context.Context, kind model.Kind, label string) (*model.Entity, error)

	// LinkGenres resolves each label and links it to the book, in input order.
	LinkGenres(ctx context.Context, labels []string, bookID uuid.UUID) error

	// LinkTags resolves each label and links it to the book, in input order.
	LinkTags(ctx context.Context, labels []string, bookID uuid.UUID) error

	// AttachTaxonomy splits raw genre and tag text and links both to the book.
	AttachTaxonomy(ctx context.Context, bookID uuid.UUID, rawGenres, rawTags string) error

	// BookGenres lists the genre labels linked to a book.
	BookGenres(ctx context.Context, bookID uuid.UUID) ([]*model.Entity, error)

	// BookTags lists the tag labels linked to a book.
	BookTags(ctx context.Context, bookID uuid.UUID) ([]*model.Entity, error)
}
