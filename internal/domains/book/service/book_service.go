package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"bookspace-backend/internal/domains/book/model"
	"bookspace-backend/internal/domains/book/repository"
	commentService "bookspace-backend/internal/domains/comment/service"
	shelfModel "bookspace-backend/internal/domains/shelf/model"
	shelfRepository "bookspace-backend/internal/domains/shelf/repository"
	taxonomyService "bookspace-backend/internal/domains/taxonomy/service"
	"bookspace-backend/pkg/cache"
)

const (
	bookCacheTTL       = 10 * time.Minute
	bookCacheKeyFormat = "book:%s"
)

type bookService struct {
	bookRepo  repository.BookRepository
	shelfRepo shelfRepository.ShelfRepository
	taxonomy  taxonomyService.ServiceInterface
	comments  commentService.ServiceInterface
	cache     cache.Cache
}

func NewBookService(
	bookRepo repository.BookRepository,
	shelfRepo shelfRepository.ShelfRepository,
	taxonomy taxonomyService.ServiceInterface,
	comments commentService.ServiceInterface,
	cacheClient cache.Cache,
) ServiceInterface {
	return &bookService{
		bookRepo:  bookRepo,
		shelfRepo: shelfRepo,
		taxonomy:  taxonomy,
		comments:  comments,
		cache:     cacheClient,
	}
}

func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book := &model.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		Images:        req.Images,
		PublishedYear: req.PublishedYear,
		Rating:        decimal.Zero,
		RatesCount:    0,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	// Taxonomy linking is not atomic with book creation: a failure here
	// leaves the book without part of its labels, it does not roll back.
	if err := s.taxonomy.AttachTaxonomy(ctx, book.ID, req.Genres, req.Tags); err != nil {
		return nil, fmt.Errorf("book created but taxonomy linking failed: %w", err)
	}

	return model.NewBookResponse(book), nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	key := fmt.Sprintf(bookCacheKeyFormat, id)

	var cached model.BookResponse
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.NewBookResponse(book)
	if err := s.cache.Set(ctx, key, resp, bookCacheTTL); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("failed to cache book")
	}

	return resp, nil
}

func (s *bookService) GetBookDetails(ctx context.Context, id uuid.UUID, viewer string, viewerID uuid.UUID) (*model.BookDetailResponse, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	genres, err := s.taxonomy.BookGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.taxonomy.BookTags(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForBook(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	detail := &model.BookDetailResponse{
		Book:     book,
		Genres:   make([]string, 0, len(genres)),
		Tags:     make([]string, 0, len(tags)),
		Comments: make([]model.CommentView, 0, len(comments)),
	}
	for _, g := range genres {
		detail.Genres = append(detail.Genres, g.Label)
	}
	for _, t := range tags {
		detail.Tags = append(detail.Tags, t.Label)
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, model.CommentView{
			ID:           c.ID,
			Author:       c.Author,
			AuthorPicURL: c.AuthorPicURL,
			Content:      c.Content,
			CreatedAt:    c.CreatedAt,
			CanEdit:      c.CanEdit,
		})
	}

	if viewerID != uuid.Nil {
		record, err := s.shelfRepo.Get(ctx, id, viewerID)
		if err != nil && !errors.Is(err, shelfModel.ErrNotOnShelf) {
			return nil, err
		}
		if record != nil && record.HasRatedBook {
			detail.IsRated = true
			detail.UserRating = record.Rate
		}
	}

	return detail, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.CoverURL != nil {
		book.CoverURL = req.CoverURL
	}
	if req.Images != nil {
		book.Images = req.Images
	}
	if req.PublishedYear != nil {
		book.PublishedYear = req.PublishedYear
	}
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return model.NewBookResponse(book), nil
}

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *bookService) ListBooks(ctx context.Context, page, limit int) ([]*model.BookResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 30
	}

	books, total, err := s.bookRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*model.BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, model.NewBookResponse(book))
	}

	return responses, total, nil
}

func (s *bookService) SearchBooks(ctx context.Context, q model.SearchQuery) ([]*model.BookResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var (
		books []*model.Book
		err   error
	)

	switch q.By {
	case "title":
		books, err = s.bookRepo.Search(ctx, q.Filter, true, false)
	case "author":
		books, err = s.bookRepo.Search(ctx, q.Filter, false, true)
	case "genre":
		books, err = s.bookRepo.SearchByGenre(ctx, q.Filter)
	case "tag":
		books, err = s.bookRepo.SearchByTag(ctx, q.Filter)
	default:
		books, err = s.bookRepo.Search(ctx, q.Filter, false, false)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*model.BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, model.NewBookResponse(book))
	}

	return responses, nil
}

func (s *bookService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, fmt.Sprintf(bookCacheKeyFormat, id)); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("failed to invalidate book cache")
	}
}

func (s *bookService) RateBook(ctx context.Context, bookID, userID uuid.UUID, rate int) (*model.BookResponse, error) {
	if rate < model.MinRating || rate > model.MaxRating {
		return nil, model.NewInvalidRatingError(rate)
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	prevRating := book.Rating
	prevCount := book.RatesCount

	// The voter's status comes from their own vote record, never from the
	// request: no shelf record or has_rated_book=false means this is their
	// first vote on the book.
	isNewVoter := true
	record, err := s.shelfRepo.Get(ctx, bookID, userID)
	switch {
	case err == nil:
		isNewVoter = !record.HasRatedBook
	case errors.Is(err, shelfModel.ErrNotOnShelf):
	default:
		return nil, err
	}

	if err := book.ApplyRating(rate, isNewVoter); err != nil {
		return nil, err
	}

	if err := s.bookRepo.UpdateRating(ctx, book, prevRating, prevCount); err != nil {
		return nil, err
	}

	if err := s.shelfRepo.RecordVote(ctx, bookID, userID, rate); err != nil {
		return nil, fmt.Errorf("rating applied but vote record failed: %w", err)
	}

	s.invalidate(ctx, bookID)
	return model.NewBookResponse(book), nil
}
