package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	// Rating bounds. The aggregator itself does not reject out-of-range
	// votes; request validation does.
	MinRating = 1
	MaxRating = 5

	// RatingPrecision is the number of decimal places every mean update
	// is rounded to, so repeated identical inputs stay exactly idempotent.
	RatingPrecision = 2
)

// Book represents the main catalog entity.
type Book struct {
	// Identity
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`
	ISBN  *string   `json:"isbn" db:"isbn"`

	// Authorship is a plain display string, not a relation.
	Author string `json:"author" db:"author"`

	// Media
	CoverURL *string        `json:"cover_url" db:"cover_url"`
	Images   pq.StringArray `json:"images" db:"images"`

	// Content
	Description   *string `json:"description" db:"description"`
	PublishedYear *int    `json:"published_year" db:"published_year"`

	// Aggregate rating. Rating is always the arithmetic mean of exactly
	// RatesCount integer votes folded into it; no raw votes are retained
	// here. RatesCount == 0 implies Rating == 0.
	Rating     decimal.Decimal `json:"rating" db:"rating"`
	RatesCount int             `json:"rates_count" db:"rates_count"`

	// Timestamps
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ApplyRating folds one integer vote into the running mean.
//
// New voter:        rating' = (rating*count + rate) / (count+1), count' = count+1
// Existing voter:   rating' = (rating*(count-1) + rate) / count, count unchanged
//
// The existing-voter formula assumes the caller really is replacing a prior
// vote; the book has no way to verify that beyond the flag. Division results
// are rounded to RatingPrecision places on every update.
func (b *Book) ApplyRating(rate int, isNewVoter bool) error {
	count := int64(b.RatesCount)
	vote := decimal.NewFromInt(int64(rate))

	if isNewVoter {
		total := b.Rating.Mul(decimal.NewFromInt(count)).Add(vote)
		b.Rating = total.Div(decimal.NewFromInt(count + 1)).Round(RatingPrecision)
		b.RatesCount++
		return nil
	}

	if b.RatesCount == 0 {
		// Revising a vote on a book with zero votes would divide by zero.
		return ErrNoVotesToRevise
	}

	total := b.Rating.Mul(decimal.NewFromInt(count - 1)).Add(vote)
	b.Rating = total.Div(decimal.NewFromInt(count)).Round(RatingPrecision)
	return nil
}
