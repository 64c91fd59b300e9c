package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBookRequest carries a new book plus the raw delimited genre/tag
// text exactly as the author typed it.
type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author" binding:"required"`
	ISBN          *string  `json:"isbn"`
	Description   *string  `json:"description"`
	CoverURL      *string  `json:"cover_url"`
	Images        []string `json:"images"`
	PublishedYear *int     `json:"published_year"`

	// Free-form delimited text, e.g. "Fantasy, Adventure; Sci-Fi".
	Genres string `json:"genres"`
	Tags   string `json:"tags"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.ISBN,
			validation.When(r.ISBN != nil, validation.By(func(interface{}) error {
				return validation.Validate(*r.ISBN, is.ISBN)
			})),
		),
		validation.Field(&r.Description,
			validation.When(r.Description != nil, validation.By(func(interface{}) error {
				return validation.Validate(*r.Description, validation.Length(0, 10000))
			})),
		),
		validation.Field(&r.CoverURL,
			validation.When(r.CoverURL != nil, validation.By(func(interface{}) error {
				return validation.Validate(*r.CoverURL, is.URL)
			})),
		),
		validation.Field(&r.Genres, validation.Length(0, 1000)),
		validation.Field(&r.Tags, validation.Length(0, 1000)),
	)
}

// UpdateBookRequest updates catalog fields only; the rating columns are
// owned by the rating flow.
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Description   *string  `json:"description"`
	CoverURL      *string  `json:"cover_url"`
	Images        []string `json:"images"`
	PublishedYear *int     `json:"published_year"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.By(func(interface{}) error {
				return validation.Validate(*r.Title, validation.Required, validation.Length(1, 500))
			})),
		),
		validation.Field(&r.Author,
			validation.When(r.Author != nil, validation.By(func(interface{}) error {
				return validation.Validate(*r.Author, validation.Required, validation.Length(1, 200))
			})),
		),
	)
}

// RateBookRequest is one integer vote. Range checking happens here, at the
// boundary; the aggregate math itself never rejects a value.
type RateBookRequest struct {
	Rate int `json:"rate" binding:"required"`
}

func (r RateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rate,
			validation.Required.Error("rate is required"),
			validation.Min(MinRating).Error("rate is below the valid range"),
			validation.Max(MaxRating).Error("rate is above the valid range"),
		),
	)
}

// SearchQuery mirrors the catalog search filters: default searches title
// and author together, the rest narrow to a single field.
type SearchQuery struct {
	Filter string `json:"filter" form:"filter"`
	By     string `json:"by" form:"by"`
}

func (q SearchQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Filter, validation.Required.Error("filter is required"), validation.Length(1, 200)),
		validation.Field(&q.By, validation.In("default", "title", "author", "genre", "tag")),
	)
}

// BookResponse is the public book payload.
type BookResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          *string         `json:"isbn,omitempty"`
	Description   *string         `json:"description,omitempty"`
	CoverURL      *string         `json:"cover_url,omitempty"`
	Images        []string        `json:"images,omitempty"`
	PublishedYear *int            `json:"published_year,omitempty"`
	Rating        decimal.Decimal `json:"rating"`
	RatesCount    int             `json:"rates_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewBookResponse(b *Book) *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		Images:        b.Images,
		PublishedYear: b.PublishedYear,
		Rating:        b.Rating,
		RatesCount:    b.RatesCount,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// CommentView is a comment as shown on the book page, with the derived
// can_edit flag for the current viewer.
type CommentView struct {
	ID           uuid.UUID `json:"id"`
	Author       string    `json:"author"`
	AuthorPicURL *string   `json:"author_pic_url,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	CanEdit      bool      `json:"can_edit"`
}

// BookDetailResponse is the full book page: the book, its taxonomy, its
// comments annotated for the viewer, and the viewer's own rating state.
type BookDetailResponse struct {
	Book     *BookResponse `json:"book"`
	Genres   []string      `json:"genres"`
	Tags     []string      `json:"tags"`
	Comments []CommentView `json:"comments"`

	IsRated    bool `json:"is_rated"`
	UserRating int  `json:"user_rating"`
}
