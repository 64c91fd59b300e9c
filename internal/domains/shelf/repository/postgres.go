package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookspace-backend/internal/domains/shelf/model"
)

type postgresShelfRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresShelfRepository(pool *pgxpool.Pool) ShelfRepository {
	return &postgresShelfRepository{pool: pool}
}

func (r *postgresShelfRepository) Get(ctx context.Context, bookID, userID uuid.UUID) (*model.BookUser, error) {
	query := `
		SELECT book_id, user_id, state, rate, has_rated_book, created_at, updated_at
		FROM book_users
		WHERE book_id = $1 AND user_id = $2
	`

	record := &model.BookUser{}
	err := r.pool.QueryRow(ctx, query, bookID, userID).Scan(
		&record.BookID,
		&record.UserID,
		&record.State,
		&record.Rate,
		&record.HasRatedBook,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotOnShelf
		}
		return nil, fmt.Errorf("failed to get shelf record: %w", err)
	}

	return record, nil
}

func (r *postgresShelfRepository) SetState(ctx context.Context, bookID, userID uuid.UUID, state model.State) error {
	query := `
		INSERT INTO book_users (book_id, user_id, state, rate, has_rated_book, created_at, updated_at)
		VALUES ($1, $2, $3, 0, false, now(), now())
		ON CONFLICT (book_id, user_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, bookID, userID, state); err != nil {
		return fmt.Errorf("failed to set shelf state: %w", err)
	}

	return nil
}

func (r *postgresShelfRepository) RecordVote(ctx context.Context, bookID, userID uuid.UUID, rate int) error {
	query := `
		INSERT INTO book_users (book_id, user_id, state, rate, has_rated_book, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, now(), now())
		ON CONFLICT (book_id, user_id)
		DO UPDATE SET rate = EXCLUDED.rate, has_rated_book = true, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, bookID, userID, model.StateDefault, rate); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	return nil
}

func (r *postgresShelfRepository) Remove(ctx context.Context, bookID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM book_users WHERE book_id = $1 AND user_id = $2`, bookID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove shelf record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotOnShelf
	}

	return nil
}

func (r *postgresShelfRepository) ListBooks(ctx context.Context, userID uuid.UUID, state model.State) ([]*model.ShelfBook, error) {
	query := `
		SELECT b.id, b.title, b.author, b.cover_url, bu.state
		FROM book_users bu
		JOIN books b ON b.id = bu.book_id
		WHERE bu.user_id = $1 AND bu.state = $2 AND b.deleted_at IS NULL
		ORDER BY bu.updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelf books: %w", err)
	}
	defer rows.Close()

	var books []*model.ShelfBook
	for rows.Next() {
		book := &model.ShelfBook{}
		if err := rows.Scan(&book.BookID, &book.Title, &book.Author, &book.CoverURL, &book.State); err != nil {
			return nil, fmt.Errorf("failed to scan shelf row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shelf rows: %w", err)
	}

	return books, nil
}
