package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookspace-backend/internal/domains/book/model"
	commentModel "bookspace-backend/internal/domains/comment/model"
	shelfModel "bookspace-backend/internal/domains/shelf/model"
	taxonomyModel "bookspace-backend/internal/domains/taxonomy/model"
)

// fakeBookRepo holds a single book and mimics the compare-and-swap
// behavior of the real rating update.
type fakeBookRepo struct {
	book *model.Book

	// conflictOnce makes the next UpdateRating behave as if another
	// writer got there first.
	conflictOnce bool

	updateRatingCalls int
}

func (f *fakeBookRepo) Create(_ context.Context, book *model.Book) error {
	f.book = book
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	if f.book == nil || f.book.ID != id {
		return nil, model.ErrBookNotFound
	}
	copied := *f.book
	return &copied, nil
}

func (f *fakeBookRepo) Update(_ context.Context, book *model.Book) error {
	f.book = book
	return nil
}

func (f *fakeBookRepo) UpdateRating(_ context.Context, book *model.Book, prevRating decimal.Decimal, prevCount int) error {
	f.updateRatingCalls++
	if f.conflictOnce {
		f.conflictOnce = false
		return model.ErrRatingConflict
	}
	if !f.book.Rating.Equal(prevRating) || f.book.RatesCount != prevCount {
		return model.ErrRatingConflict
	}
	copied := *book
	f.book = &copied
	return nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.book == nil || f.book.ID != id {
		return model.ErrBookNotFound
	}
	now := time.Now()
	f.book.DeletedAt = &now
	return nil
}

func (f *fakeBookRepo) List(context.Context, int, int) ([]*model.Book, int, error) {
	if f.book == nil {
		return nil, 0, nil
	}
	return []*model.Book{f.book}, 1, nil
}

func (f *fakeBookRepo) Search(context.Context, string, bool, bool) ([]*model.Book, error) {
	return nil, nil
}

func (f *fakeBookRepo) SearchByGenre(context.Context, string) ([]*model.Book, error) {
	return nil, nil
}

func (f *fakeBookRepo) SearchByTag(context.Context, string) ([]*model.Book, error) {
	return nil, nil
}

// fakeShelfRepo stores per-(book,user) records in memory.
type fakeShelfRepo struct {
	records map[string]*shelfModel.BookUser
	voted   []int
}

func shelfKey(bookID, userID uuid.UUID) string {
	return bookID.String() + "/" + userID.String()
}

func newFakeShelfRepo() *fakeShelfRepo {
	return &fakeShelfRepo{records: map[string]*shelfModel.BookUser{}}
}

func (f *fakeShelfRepo) Get(_ context.Context, bookID, userID uuid.UUID) (*shelfModel.BookUser, error) {
	if r, ok := f.records[shelfKey(bookID, userID)]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, shelfModel.ErrNotOnShelf
}

func (f *fakeShelfRepo) SetState(_ context.Context, bookID, userID uuid.UUID, state shelfModel.State) error {
	key := shelfKey(bookID, userID)
	if r, ok := f.records[key]; ok {
		r.State = state
		return nil
	}
	f.records[key] = &shelfModel.BookUser{BookID: bookID, UserID: userID, State: state}
	return nil
}

func (f *fakeShelfRepo) RecordVote(_ context.Context, bookID, userID uuid.UUID, rate int) error {
	key := shelfKey(bookID, userID)
	r, ok := f.records[key]
	if !ok {
		r = &shelfModel.BookUser{BookID: bookID, UserID: userID, State: shelfModel.StateDefault}
		f.records[key] = r
	}
	r.Rate = rate
	r.HasRatedBook = true
	f.voted = append(f.voted, rate)
	return nil
}

func (f *fakeShelfRepo) Remove(_ context.Context, bookID, userID uuid.UUID) error {
	delete(f.records, shelfKey(bookID, userID))
	return nil
}

func (f *fakeShelfRepo) ListBooks(context.Context, uuid.UUID, shelfModel.State) ([]*shelfModel.ShelfBook, error) {
	return nil, nil
}

// fakeTaxonomy records attach calls and serves fixed labels.
type fakeTaxonomy struct {
	attachedGenres string
	attachedTags   string
	genres         []*taxonomyModel.Entity
	tags           []*taxonomyModel.Entity
}

func (f *fakeTaxonomy) SplitLabels(string) []string { return nil }

func (f *fakeTaxonomy) Resolve(context.Context, taxonomyModel.Kind, string) (*taxonomyModel.Entity, error) {
	return nil, nil
}

func (f *fakeTaxonomy) LinkGenres(context.Context, []string, uuid.UUID) error { return nil }

func (f *fakeTaxonomy) LinkTags(context.Context, []string, uuid.UUID) error { return nil }

func (f *fakeTaxonomy) AttachTaxonomy(_ context.Context, _ uuid.UUID, rawGenres, rawTags string) error {
	f.attachedGenres = rawGenres
	f.attachedTags = rawTags
	return nil
}

func (f *fakeTaxonomy) BookGenres(context.Context, uuid.UUID) ([]*taxonomyModel.Entity, error) {
	return f.genres, nil
}

func (f *fakeTaxonomy) BookTags(context.Context, uuid.UUID) ([]*taxonomyModel.Entity, error) {
	return f.tags, nil
}

// fakeComments serves a fixed comment list.
type fakeComments struct {
	comments []*commentModel.Comment
	viewer   string
}

func (f *fakeComments) Add(context.Context, uuid.UUID, uuid.UUID, commentModel.AddCommentRequest) (*commentModel.Comment, error) {
	return nil, nil
}

func (f *fakeComments) ListForBook(_ context.Context, _ uuid.UUID, viewer string) ([]*commentModel.Comment, error) {
	f.viewer = viewer
	return f.comments, nil
}

func (f *fakeComments) EvaluateEditRights(context.Context, []*commentModel.Comment, string) error {
	return nil
}

func (f *fakeComments) Delete(context.Context, uuid.UUID, string) error { return nil }

// noopCache satisfies the cache contract without storing anything.
type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, ...string) error { return nil }

func (noopCache) DeletePattern(context.Context, string) error { return nil }

func (noopCache) Ping(context.Context) error { return nil }

type fixture struct {
	svc      ServiceInterface
	books    *fakeBookRepo
	shelf    *fakeShelfRepo
	taxonomy *fakeTaxonomy
	comments *fakeComments
}

func newFixture(book *model.Book) *fixture {
	f := &fixture{
		books:    &fakeBookRepo{book: book},
		shelf:    newFakeShelfRepo(),
		taxonomy: &fakeTaxonomy{},
		comments: &fakeComments{},
	}
	f.svc = NewBookService(f.books, f.shelf, f.taxonomy, f.comments, noopCache{})
	return f
}

func testBook(rating string, count int) *model.Book {
	return &model.Book{
		ID:         uuid.New(),
		Title:      "The Left Hand of Darkness",
		Author:     "Ursula K. Le Guin",
		Rating:     decimal.RequireFromString(rating),
		RatesCount: count,
	}
}

func TestRateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("first vote from a user counts as new", func(t *testing.T) {
		book := testBook("0", 0)
		f := newFixture(book)
		userID := uuid.New()

		resp, err := f.svc.RateBook(ctx, book.ID, userID, 5)
		require.NoError(t, err)
		assert.Equal(t, "5", resp.Rating.String())
		assert.Equal(t, 1, resp.RatesCount)

		record, err := f.shelf.Get(ctx, book.ID, userID)
		require.NoError(t, err)
		assert.True(t, record.HasRatedBook)
		assert.Equal(t, 5, record.Rate)
	})

	t.Run("shelved but unvoted user still counts as new", func(t *testing.T) {
		book := testBook("4", 1)
		f := newFixture(book)
		userID := uuid.New()
		require.NoError(t, f.shelf.SetState(ctx, book.ID, userID, shelfModel.StateRead))

		resp, err := f.svc.RateBook(ctx, book.ID, userID, 2)
		require.NoError(t, err)
		// (4*1 + 2) / 2 = 3
		assert.Equal(t, "3", resp.Rating.String())
		assert.Equal(t, 2, resp.RatesCount)
	})

	t.Run("second vote from the same user revises, not adds", func(t *testing.T) {
		book := testBook("0", 0)
		f := newFixture(book)
		userID := uuid.New()

		_, err := f.svc.RateBook(ctx, book.ID, userID, 2)
		require.NoError(t, err)

		resp, err := f.svc.RateBook(ctx, book.ID, userID, 5)
		require.NoError(t, err)
		assert.Equal(t, "5", resp.Rating.String())
		assert.Equal(t, 1, resp.RatesCount, "revision must not grow the count")

		record, err := f.shelf.Get(ctx, book.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, 5, record.Rate)
	})

	t.Run("votes from different users each grow the count", func(t *testing.T) {
		book := testBook("0", 0)
		f := newFixture(book)

		_, err := f.svc.RateBook(ctx, book.ID, uuid.New(), 4)
		require.NoError(t, err)
		resp, err := f.svc.RateBook(ctx, book.ID, uuid.New(), 2)
		require.NoError(t, err)

		assert.Equal(t, "3", resp.Rating.String())
		assert.Equal(t, 2, resp.RatesCount)
	})

	t.Run("lost write race surfaces the conflict", func(t *testing.T) {
		book := testBook("3", 2)
		f := newFixture(book)
		f.books.conflictOnce = true

		_, err := f.svc.RateBook(ctx, book.ID, uuid.New(), 5)
		assert.ErrorIs(t, err, model.ErrRatingConflict)
		assert.Empty(t, f.shelf.voted, "no vote may be recorded on a failed write")
	})

	t.Run("out of range vote is rejected before any read", func(t *testing.T) {
		book := testBook("3", 2)
		f := newFixture(book)

		_, err := f.svc.RateBook(ctx, book.ID, uuid.New(), 0)
		assert.ErrorIs(t, err, model.ErrInvalidRating)

		_, err = f.svc.RateBook(ctx, book.ID, uuid.New(), 6)
		assert.ErrorIs(t, err, model.ErrInvalidRating)
		assert.Equal(t, 0, f.books.updateRatingCalls)
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newFixture(testBook("0", 0))

		_, err := f.svc.RateBook(ctx, uuid.New(), uuid.New(), 3)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("passes raw taxonomy text through to the linker", func(t *testing.T) {
		f := newFixture(nil)

		resp, err := f.svc.CreateBook(ctx, model.CreateBookRequest{
			Title:  "Dune",
			Author: "Frank Herbert",
			Genres: "Sci-Fi, Adventure",
			Tags:   "spice; desert",
		})
		require.NoError(t, err)
		assert.Equal(t, "Sci-Fi, Adventure", f.taxonomy.attachedGenres)
		assert.Equal(t, "spice; desert", f.taxonomy.attachedTags)
		assert.Equal(t, 0, resp.RatesCount)
		assert.True(t, resp.Rating.IsZero())
	})

	t.Run("rejects a request without a title", func(t *testing.T) {
		f := newFixture(nil)

		_, err := f.svc.CreateBook(ctx, model.CreateBookRequest{Author: "Anonymous"})
		assert.Error(t, err)
		assert.Nil(t, f.books.book)
	})
}

func TestGetBookDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles taxonomy, comments and the viewer's vote", func(t *testing.T) {
		book := testBook("4.5", 2)
		f := newFixture(book)
		f.taxonomy.genres = []*taxonomyModel.Entity{{ID: "g1", Kind: taxonomyModel.KindGenre, Label: "Fantasy"}}
		f.taxonomy.tags = []*taxonomyModel.Entity{{ID: "t1", Kind: taxonomyModel.KindTag, Label: "epic"}}
		f.comments.comments = []*commentModel.Comment{
			{ID: uuid.New(), Author: "alice", Content: "loved it", CanEdit: true},
		}

		viewerID := uuid.New()
		require.NoError(t, f.shelf.RecordVote(ctx, book.ID, viewerID, 5))

		detail, err := f.svc.GetBookDetails(ctx, book.ID, "alice", viewerID)
		require.NoError(t, err)

		assert.Equal(t, []string{"Fantasy"}, detail.Genres)
		assert.Equal(t, []string{"epic"}, detail.Tags)
		require.Len(t, detail.Comments, 1)
		assert.True(t, detail.Comments[0].CanEdit)
		assert.True(t, detail.IsRated)
		assert.Equal(t, 5, detail.UserRating)
		assert.Equal(t, "alice", f.comments.viewer)
	})

	t.Run("anonymous viewer gets no rating state", func(t *testing.T) {
		book := testBook("4.5", 2)
		f := newFixture(book)

		detail, err := f.svc.GetBookDetails(ctx, book.ID, "", uuid.Nil)
		require.NoError(t, err)
		assert.False(t, detail.IsRated)
		assert.Zero(t, detail.UserRating)
		assert.Empty(t, f.comments.viewer)
	})

	t.Run("shelved without voting reads as not rated", func(t *testing.T) {
		book := testBook("4.5", 2)
		f := newFixture(book)
		viewerID := uuid.New()
		require.NoError(t, f.shelf.SetState(ctx, book.ID, viewerID, shelfModel.StateWishList))

		detail, err := f.svc.GetBookDetails(ctx, book.ID, "bob", viewerID)
		require.NoError(t, err)
		assert.False(t, detail.IsRated)
	})
}
