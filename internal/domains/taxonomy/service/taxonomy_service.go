package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookspace-backend/internal/domains/taxonomy/model"
	"bookspace-backend/internal/domains/taxonomy/repository"
)

// labelDelimiter matches any run of characters that is neither a word
// character nor a hyphen. "Fantasy, Adventure; Sci-Fi" splits into
// Fantasy, Adventure, Sci-Fi.
var labelDelimiter = regexp.MustCompile(`[^\w-]+`)

type taxonomyService struct {
	store repository.Store

	// dedupWithinBatch drops repeated labels inside a single link call.
	// Off by default: repeated tokens then create duplicate link rows,
	// matching the historic behavior.
	dedupWithinBatch bool
}

type Option func(*taxonomyService)

// WithBatchDedup makes Link calls skip labels already linked earlier in
// the same batch.
func WithBatchDedup() Option {
	return func(s *taxonomyService) {
		s.dedupWithinBatch = true
	}
}

func NewTaxonomyService(store repository.Store, opts ...Option) ServiceInterface {
	s := &taxonomyService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *taxonomyService) SplitLabels(raw string) []string {
	if raw == "" {
		// Absence of taxonomy text is a normal case, not a failure.
		return nil
	}
	return labelDelimiter.Split(raw, -1)
}

func (s *taxonomyService) Resolve(ctx context.Context, kind model.Kind, label string) (*model.Entity, error) {
	entity, err := s.store.FindByLabel(ctx, kind, label)
	if err == nil {
		return entity, nil
	}
	if !errors.Is(err, model.ErrEntityNotFound) {
		return nil, fmt.Errorf("failed to look up %s %q: %w", kind, label, err)
	}

	// First reference: create the canonical entity lazily. Lookup-then-create
	// is not atomic; the store's conditional insert resolves concurrent
	// first-use of the same label to a single row.
	entity = &model.Entity{
		ID:    uuid.NewString(),
		Kind:  kind,
		Label: label,
	}

	if err := s.store.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create %s %q: %w", kind, label, err)
	}

	log.Debug().Str("kind", kind.String()).Str("label", label).Str("id", entity.ID).Msg("created canonical entity")
	return entity, nil
}

func (s *taxonomyService) LinkGenres(ctx context.Context, labels []string, bookID uuid.UUID) error {
	return s.linkLabels(ctx, model.KindGenre, labels, bookID)
}

func (s *taxonomyService) LinkTags(ctx context.Context, labels []string, bookID uuid.UUID) error {
	return s.linkLabels(ctx, model.KindTag, labels, bookID)
}

// linkLabels resolves and links labels strictly in input order. The batch is
// not atomic: a failure on label N leaves labels 1..N-1 linked.
func (s *taxonomyService) linkLabels(ctx context.Context, kind model.Kind, labels []string, bookID uuid.UUID) error {
	var seen map[string]bool
	if s.dedupWithinBatch {
		seen = make(map[string]bool, len(labels))
	}

	for _, label := range labels {
		if label == "" {
			// Leading/trailing delimiters and delimiter runs produce
			// empty tokens; nothing to link.
			continue
		}
		if seen != nil {
			if seen[label] {
				continue
			}
			seen[label] = true
		}

		entity, err := s.Resolve(ctx, kind, label)
		if err != nil {
			return err
		}

		if err := s.store.CreateLink(ctx, bookID, entity.ID, kind); err != nil {
			return fmt.Errorf("failed to link %s %q: %w", kind, label, err)
		}
	}

	return nil
}

func (s *taxonomyService) AttachTaxonomy(ctx context.Context, bookID uuid.UUID, rawGenres, rawTags string) error {
	if err := s.LinkGenres(ctx, s.SplitLabels(rawGenres), bookID); err != nil {
		return err
	}
	return s.LinkTags(ctx, s.SplitLabels(rawTags), bookID)
}

func (s *taxonomyService) BookGenres(ctx context.Context, bookID uuid.UUID) ([]*model.Entity, error) {
	return s.store.ListByBook(ctx, bookID, model.KindGenre)
}

func (s *taxonomyService) BookTags(ctx context.Context, bookID uuid.UUID) ([]*model.Entity, error) {
	return s.store.ListByBook(ctx, bookID, model.KindTag)
}
