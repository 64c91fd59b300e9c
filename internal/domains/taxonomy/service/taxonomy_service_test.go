package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookspace-backend/internal/domains/taxonomy/model"
)

// fakeStore is an in-memory Store keyed by (kind, label). It records every
// call so tests can assert on call counts and link order.
type fakeStore struct {
	entities map[string]*model.Entity
	links    []linkCall

	createCalls int
	findCalls   int

	failLinkLabel string // entity id whose CreateLink fails
	linkErr       error
}

type linkCall struct {
	bookID   uuid.UUID
	entityID string
	kind     model.Kind
}

func newFakeStore() *fakeStore {
	return &fakeStore{entities: map[string]*model.Entity{}}
}

func storeKey(kind model.Kind, label string) string {
	return string(kind) + "/" + label
}

func (f *fakeStore) FindByLabel(_ context.Context, kind model.Kind, label string) (*model.Entity, error) {
	f.findCalls++
	if e, ok := f.entities[storeKey(kind, label)]; ok {
		return e, nil
	}
	return nil, model.ErrEntityNotFound
}

func (f *fakeStore) Create(_ context.Context, entity *model.Entity) error {
	f.createCalls++
	key := storeKey(entity.Kind, entity.Label)
	if existing, ok := f.entities[key]; ok {
		// Concurrent-create semantics: adopt the winner's id.
		entity.ID = existing.ID
		return nil
	}
	f.entities[key] = &model.Entity{ID: entity.ID, Kind: entity.Kind, Label: entity.Label}
	return nil
}

func (f *fakeStore) CreateLink(_ context.Context, bookID uuid.UUID, entityID string, kind model.Kind) error {
	if f.failLinkLabel != "" && entityID == f.failLinkLabel {
		return f.linkErr
	}
	f.links = append(f.links, linkCall{bookID: bookID, entityID: entityID, kind: kind})
	return nil
}

func (f *fakeStore) ListByBook(_ context.Context, bookID uuid.UUID, kind model.Kind) ([]*model.Entity, error) {
	var out []*model.Entity
	for _, l := range f.links {
		if l.bookID != bookID || l.kind != kind {
			continue
		}
		for _, e := range f.entities {
			if e.ID == l.entityID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func TestSplitLabels(t *testing.T) {
	s := NewTaxonomyService(newFakeStore())

	t.Run("splits on any non-word non-hyphen run", func(t *testing.T) {
		labels := s.SplitLabels("Fantasy, Adventure; Sci-Fi")
		assert.Equal(t, []string{"Fantasy", "Adventure", "Sci-Fi"}, labels)
	})

	t.Run("preserves input order", func(t *testing.T) {
		labels := s.SplitLabels("zeta alpha mid")
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, labels)
	})

	t.Run("keeps hyphens and underscores inside labels", func(t *testing.T) {
		labels := s.SplitLabels("sci-fi snake_case")
		assert.Equal(t, []string{"sci-fi", "snake_case"}, labels)
	})

	t.Run("empty input yields no labels", func(t *testing.T) {
		assert.Nil(t, s.SplitLabels(""))
	})

	t.Run("delimiter runs collapse to one split", func(t *testing.T) {
		labels := s.SplitLabels("a,,;  b")
		assert.Equal(t, []string{"a", "b"}, labels)
	})

	t.Run("leading and trailing delimiters produce empty tokens", func(t *testing.T) {
		labels := s.SplitLabels(",a,")
		assert.Equal(t, []string{"", "a", ""}, labels)
	})

	t.Run("splitting is stable under repetition", func(t *testing.T) {
		first := s.SplitLabels("Fantasy, Adventure")
		second := s.SplitLabels("Fantasy, Adventure")
		assert.Equal(t, first, second)
	})

	t.Run("resplitting rejoined output is idempotent", func(t *testing.T) {
		labels := s.SplitLabels("Fantasy, Adventure; Sci-Fi")
		rejoined := strings.Join(labels, ",")
		assert.Equal(t, labels, s.SplitLabels(rejoined))
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the entity on first reference", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		entity, err := s.Resolve(ctx, model.KindGenre, "Fantasy")
		require.NoError(t, err)
		assert.Equal(t, "Fantasy", entity.Label)
		assert.Equal(t, model.KindGenre, entity.Kind)
		assert.NotEmpty(t, entity.ID)
		assert.Equal(t, 1, store.createCalls)
	})

	t.Run("returns the same entity on repeated resolution", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		first, err := s.Resolve(ctx, model.KindTag, "epic")
		require.NoError(t, err)

		second, err := s.Resolve(ctx, model.KindTag, "epic")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, store.createCalls, "second resolution must not create")
	})

	t.Run("kinds are separate namespaces", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		genre, err := s.Resolve(ctx, model.KindGenre, "Horror")
		require.NoError(t, err)
		tag, err := s.Resolve(ctx, model.KindTag, "Horror")
		require.NoError(t, err)

		assert.NotEqual(t, genre.ID, tag.ID)
		assert.Equal(t, 2, store.createCalls)
	})

	t.Run("labels are case-sensitive", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		lower, err := s.Resolve(ctx, model.KindGenre, "fantasy")
		require.NoError(t, err)
		upper, err := s.Resolve(ctx, model.KindGenre, "Fantasy")
		require.NoError(t, err)

		assert.NotEqual(t, lower.ID, upper.ID)
	})
}

func TestLinkLabels(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()

	t.Run("links resolve in input order", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		err := s.LinkGenres(ctx, []string{"zeta", "alpha", "mid"}, bookID)
		require.NoError(t, err)

		require.Len(t, store.links, 3)
		var labels []string
		for _, l := range store.links {
			for _, e := range store.entities {
				if e.ID == l.entityID {
					labels = append(labels, e.Label)
				}
			}
		}
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, labels)
	})

	t.Run("empty tokens are skipped", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		err := s.LinkGenres(ctx, []string{"", "a", ""}, bookID)
		require.NoError(t, err)
		assert.Len(t, store.links, 1)
	})

	t.Run("repeated labels create duplicate links by default", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		err := s.LinkTags(ctx, []string{"epic", "epic"}, bookID)
		require.NoError(t, err)

		assert.Len(t, store.links, 2)
		assert.Equal(t, store.links[0].entityID, store.links[1].entityID,
			"both links must point at the one canonical entity")
		assert.Equal(t, 1, store.createCalls)
	})

	t.Run("batch dedup skips repeats when enabled", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store, WithBatchDedup())

		err := s.LinkTags(ctx, []string{"epic", "epic", "grim"}, bookID)
		require.NoError(t, err)
		assert.Len(t, store.links, 2)
	})

	t.Run("failure keeps the already linked prefix", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		// Pre-resolve the label that will fail so we know its id.
		bad, err := s.Resolve(ctx, model.KindGenre, "bad")
		require.NoError(t, err)
		store.failLinkLabel = bad.ID
		store.linkErr = errors.New("link table unavailable")

		err = s.LinkGenres(ctx, []string{"one", "two", "bad", "never"}, bookID)
		require.Error(t, err)
		assert.Len(t, store.links, 2, "labels before the failure stay linked")
	})
}

func TestAttachTaxonomy(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()

	t.Run("splits and links both kinds", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		err := s.AttachTaxonomy(ctx, bookID, "Fantasy, Adventure", "epic; grim")
		require.NoError(t, err)

		genres, err := s.BookGenres(ctx, bookID)
		require.NoError(t, err)
		tags, err := s.BookTags(ctx, bookID)
		require.NoError(t, err)

		assert.Len(t, genres, 2)
		assert.Len(t, tags, 2)
	})

	t.Run("no text means no links and no error", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		err := s.AttachTaxonomy(ctx, bookID, "", "")
		require.NoError(t, err)
		assert.Empty(t, store.links)
		assert.Equal(t, 0, store.createCalls)
	})

	t.Run("second attach of the same text creates no new entities", func(t *testing.T) {
		store := newFakeStore()
		s := NewTaxonomyService(store)

		require.NoError(t, s.AttachTaxonomy(ctx, bookID, "Fantasy", "epic"))
		created := store.createCalls

		require.NoError(t, s.AttachTaxonomy(ctx, uuid.New(), "Fantasy", "epic"))
		assert.Equal(t, created, store.createCalls)
	})
}

func TestResolveStoreFailure(t *testing.T) {
	t.Run("lookup failures are wrapped, not swallowed", func(t *testing.T) {
		s := NewTaxonomyService(&failingStore{err: errors.New("connection reset")})

		_, err := s.Resolve(context.Background(), model.KindGenre, "Fantasy")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fantasy")
	})
}

type failingStore struct {
	err error
}

func (f *failingStore) FindByLabel(context.Context, model.Kind, string) (*model.Entity, error) {
	return nil, fmt.Errorf("query failed: %w", f.err)
}

func (f *failingStore) Create(context.Context, *model.Entity) error { return f.err }

func (f *failingStore) CreateLink(context.Context, uuid.UUID, string, model.Kind) error {
	return f.err
}

func (f *failingStore) ListByBook(context.Context, uuid.UUID, model.Kind) ([]*model.Entity, error) {
	return nil, f.err
}
