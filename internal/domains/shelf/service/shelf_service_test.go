package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookspace-backend/internal/domains/shelf/model"
)

type fakeShelfRepo struct {
	records map[string]*model.BookUser
}

func key(bookID, userID uuid.UUID) string {
	return bookID.String() + "/" + userID.String()
}

func newFakeShelfRepo() *fakeShelfRepo {
	return &fakeShelfRepo{records: map[string]*model.BookUser{}}
}

func (f *fakeShelfRepo) Get(_ context.Context, bookID, userID uuid.UUID) (*model.BookUser, error) {
	if r, ok := f.records[key(bookID, userID)]; ok {
		return r, nil
	}
	return nil, model.ErrNotOnShelf
}

func (f *fakeShelfRepo) SetState(_ context.Context, bookID, userID uuid.UUID, state model.State) error {
	k := key(bookID, userID)
	if r, ok := f.records[k]; ok {
		r.State = state
		return nil
	}
	f.records[k] = &model.BookUser{BookID: bookID, UserID: userID, State: state}
	return nil
}

func (f *fakeShelfRepo) RecordVote(_ context.Context, bookID, userID uuid.UUID, rate int) error {
	k := key(bookID, userID)
	r, ok := f.records[k]
	if !ok {
		r = &model.BookUser{BookID: bookID, UserID: userID, State: model.StateDefault}
		f.records[k] = r
	}
	r.Rate = rate
	r.HasRatedBook = true
	return nil
}

func (f *fakeShelfRepo) Remove(_ context.Context, bookID, userID uuid.UUID) error {
	delete(f.records, key(bookID, userID))
	return nil
}

func (f *fakeShelfRepo) ListBooks(_ context.Context, userID uuid.UUID, state model.State) ([]*model.ShelfBook, error) {
	var out []*model.ShelfBook
	for _, r := range f.records {
		if r.UserID == userID && r.State == state {
			out = append(out, &model.ShelfBook{BookID: r.BookID, State: r.State})
		}
	}
	return out, nil
}

func TestAddToShelf(t *testing.T) {
	ctx := context.Background()

	t.Run("files the book under the state", func(t *testing.T) {
		repo := newFakeShelfRepo()
		s := NewShelfService(repo)
		bookID, userID := uuid.New(), uuid.New()

		require.NoError(t, s.AddToShelf(ctx, bookID, userID, model.StateRead))

		record, err := repo.Get(ctx, bookID, userID)
		require.NoError(t, err)
		assert.Equal(t, model.StateRead, record.State)
	})

	t.Run("moving between states keeps the vote", func(t *testing.T) {
		repo := newFakeShelfRepo()
		s := NewShelfService(repo)
		bookID, userID := uuid.New(), uuid.New()

		require.NoError(t, repo.RecordVote(ctx, bookID, userID, 4))
		require.NoError(t, s.AddToShelf(ctx, bookID, userID, model.StateCurrentlyReading))

		record, err := repo.Get(ctx, bookID, userID)
		require.NoError(t, err)
		assert.Equal(t, model.StateCurrentlyReading, record.State)
		assert.True(t, record.HasRatedBook)
		assert.Equal(t, 4, record.Rate)
	})

	t.Run("rejects an unknown state", func(t *testing.T) {
		s := NewShelfService(newFakeShelfRepo())

		err := s.AddToShelf(ctx, uuid.New(), uuid.New(), model.State("favourite"))
		assert.ErrorIs(t, err, model.ErrInvalidState)
	})
}

func TestListShelf(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by state and user", func(t *testing.T) {
		repo := newFakeShelfRepo()
		s := NewShelfService(repo)
		userID := uuid.New()

		require.NoError(t, s.AddToShelf(ctx, uuid.New(), userID, model.StateRead))
		require.NoError(t, s.AddToShelf(ctx, uuid.New(), userID, model.StateWishList))
		require.NoError(t, s.AddToShelf(ctx, uuid.New(), uuid.New(), model.StateRead))

		books, err := s.ListShelf(ctx, userID, model.StateRead)
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("rejects an unknown state", func(t *testing.T) {
		s := NewShelfService(newFakeShelfRepo())

		_, err := s.ListShelf(ctx, uuid.New(), model.State(""))
		assert.ErrorIs(t, err, model.ErrInvalidState)
	})
}

func TestRemoveFromShelf(t *testing.T) {
	ctx := context.Background()

	t.Run("drops the record", func(t *testing.T) {
		repo := newFakeShelfRepo()
		s := NewShelfService(repo)
		bookID, userID := uuid.New(), uuid.New()

		require.NoError(t, s.AddToShelf(ctx, bookID, userID, model.StateRead))
		require.NoError(t, s.RemoveFromShelf(ctx, bookID, userID))

		_, err := repo.Get(ctx, bookID, userID)
		assert.ErrorIs(t, err, model.ErrNotOnShelf)
	})
}
