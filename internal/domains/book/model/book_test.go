package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratedBook(rating string, count int) *Book {
	return &Book{
		Rating:     decimal.RequireFromString(rating),
		RatesCount: count,
	}
}

func TestApplyRatingNewVoter(t *testing.T) {
	t.Run("first vote sets the mean to the vote", func(t *testing.T) {
		b := ratedBook("0", 0)

		err := b.ApplyRating(5, true)
		require.NoError(t, err)
		assert.Equal(t, "5", b.Rating.String())
		assert.Equal(t, 1, b.RatesCount)
	})

	t.Run("second vote averages both", func(t *testing.T) {
		b := ratedBook("5", 1)

		err := b.ApplyRating(1, true)
		require.NoError(t, err)
		assert.Equal(t, "3", b.Rating.String())
		assert.Equal(t, 2, b.RatesCount)
	})

	t.Run("identical votes from successive new voters keep the mean", func(t *testing.T) {
		b := ratedBook("0", 0)

		require.NoError(t, b.ApplyRating(5, true))
		assert.Equal(t, "5", b.Rating.String())
		assert.Equal(t, 1, b.RatesCount)

		require.NoError(t, b.ApplyRating(5, true))
		assert.Equal(t, "5", b.Rating.String())
		assert.Equal(t, 2, b.RatesCount)
	})

	t.Run("mean grows vote by vote", func(t *testing.T) {
		b := ratedBook("0", 0)
		for _, rate := range []int{4, 2} {
			require.NoError(t, b.ApplyRating(rate, true))
		}
		assert.Equal(t, "3", b.Rating.String())
		assert.Equal(t, 2, b.RatesCount)
	})

	t.Run("result is rounded to two places", func(t *testing.T) {
		b := ratedBook("0", 0)
		for _, rate := range []int{5, 4, 4} {
			require.NoError(t, b.ApplyRating(rate, true))
		}
		// (5+4+4)/3 = 4.333...
		assert.Equal(t, "4.33", b.Rating.String())
	})
}

func TestApplyRatingExistingVoter(t *testing.T) {
	t.Run("replaces the voter's prior vote without changing the count", func(t *testing.T) {
		// Two voters rated 4 and 2; the second revises to 5.
		b := ratedBook("3", 2)

		err := b.ApplyRating(5, false)
		require.NoError(t, err)
		// (3*(2-1) + 5) / 2 = 4
		assert.Equal(t, "4", b.Rating.String())
		assert.Equal(t, 2, b.RatesCount)
	})

	t.Run("revision lands on a half step", func(t *testing.T) {
		// Votes 3 and 5; the voter who gave 3 revises to 5.
		b := ratedBook("4", 2)

		err := b.ApplyRating(5, false)
		require.NoError(t, err)
		// (4*(2-1) + 5) / 2 = 4.5
		assert.Equal(t, "4.5", b.Rating.String())
		assert.Equal(t, 2, b.RatesCount)
	})

	t.Run("sole voter revising overwrites the mean", func(t *testing.T) {
		b := ratedBook("2", 1)

		err := b.ApplyRating(5, false)
		require.NoError(t, err)
		assert.Equal(t, "5", b.Rating.String())
		assert.Equal(t, 1, b.RatesCount)
	})

	t.Run("revising with zero votes is rejected", func(t *testing.T) {
		b := ratedBook("0", 0)

		err := b.ApplyRating(4, false)
		assert.ErrorIs(t, err, ErrNoVotesToRevise)
		assert.Equal(t, "0", b.Rating.String())
		assert.Equal(t, 0, b.RatesCount)
	})

	t.Run("revising to the current mean is a fixed point", func(t *testing.T) {
		b := ratedBook("4", 3)

		// (4*(3-1) + 4) / 3 = 4, however often it is applied.
		for i := 0; i < 3; i++ {
			require.NoError(t, b.ApplyRating(4, false))
			assert.Equal(t, "4", b.Rating.String())
			assert.Equal(t, 3, b.RatesCount)
		}
	})
}

func TestApplyRatingPrecision(t *testing.T) {
	t.Run("stored value never exceeds two decimal places", func(t *testing.T) {
		b := ratedBook("0", 0)
		for _, rate := range []int{5, 3, 4, 2, 5, 1, 3} {
			require.NoError(t, b.ApplyRating(rate, true))
			assert.LessOrEqual(t, int(-b.Rating.Exponent()), RatingPrecision)
		}
	})

	t.Run("integral means have no fraction digits", func(t *testing.T) {
		b := ratedBook("0", 0)
		require.NoError(t, b.ApplyRating(3, true))
		require.NoError(t, b.ApplyRating(3, true))
		assert.True(t, b.Rating.Equal(decimal.NewFromInt(3)))
	})
}
