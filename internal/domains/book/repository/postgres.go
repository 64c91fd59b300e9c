package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"bookspace-backend/internal/domains/book/model"
)

const bookColumns = `
	id, title, author, isbn, description, cover_url, images,
	published_year, rating, rates_count, created_at, updated_at
`

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, isbn, description, cover_url, images,
			published_year, rating, rates_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN,
		book.Description,
		book.CoverURL,
		pq.Array([]string(book.Images)),
		book.PublishedYear,
		book.Rating,
		book.RatesCount,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrISBNTaken
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1 AND deleted_at IS NULL`, bookColumns)

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books SET
			title = $1, author = $2, description = $3, cover_url = $4,
			images = $5, published_year = $6, updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		pq.Array([]string(book.Images)),
		book.PublishedYear,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresBookRepository) UpdateRating(ctx context.Context, book *model.Book, prevRating decimal.Decimal, prevCount int) error {
	// Compare-and-swap on the previous aggregate values. A concurrent
	// rating submission that landed first makes this write miss.
	query := `
		UPDATE books SET rating = $1, rates_count = $2, updated_at = now()
		WHERE id = $3 AND rating = $4 AND rates_count = $5 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query,
		book.Rating,
		book.RatesCount,
		book.ID,
		prevRating,
		prevCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, book.ID); err != nil {
			return err
		}
		return model.ErrRatingConflict
	}

	return nil
}

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE books SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresBookRepository) List(ctx context.Context, page, limit int) ([]*model.Book, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM books WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, bookColumns)

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (r *postgresBookRepository) Search(ctx context.Context, filter string, titleOnly, authorOnly bool) ([]*model.Book, error) {
	pattern := "%" + filter + "%"

	var condition string
	switch {
	case titleOnly:
		condition = `title ILIKE $1`
	case authorOnly:
		condition = `author ILIKE $1`
	default:
		condition = `(title ILIKE $1 OR author ILIKE $1)`
	}

	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE %s AND deleted_at IS NULL
		ORDER BY title
	`, bookColumns, condition)

	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *postgresBookRepository) SearchByGenre(ctx context.Context, filter string) ([]*model.Book, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		JOIN genres g ON g.id = bg.genre_id
		WHERE g.name ILIKE $1 AND b.deleted_at IS NULL
		ORDER BY b.title
	`, prefixColumns("b"))

	rows, err := r.pool.Query(ctx, query, "%"+filter+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search books by genre: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *postgresBookRepository) SearchByTag(ctx context.Context, filter string) ([]*model.Book, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM books b
		JOIN book_tags bt ON bt.book_id = b.id
		JOIN tags t ON t.id = bt.tag_id
		WHERE t.value ILIKE $1 AND b.deleted_at IS NULL
		ORDER BY b.title
	`, prefixColumns("b"))

	rows, err := r.pool.Query(ctx, query, "%"+filter+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search books by tag: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func prefixColumns(alias string) string {
	return fmt.Sprintf(`
		%[1]s.id, %[1]s.title, %[1]s.author, %[1]s.isbn, %[1]s.description,
		%[1]s.cover_url, %[1]s.images, %[1]s.published_year, %[1]s.rating,
		%[1]s.rates_count, %[1]s.created_at, %[1]s.updated_at
	`, alias)
}

func scanBook(row pgx.Row) (*model.Book, error) {
	book := &model.Book{}
	var images []string

	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Description,
		&book.CoverURL,
		pq.Array(&images),
		&book.PublishedYear,
		&book.Rating,
		&book.RatesCount,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	book.Images = images
	return book, nil
}

func collectBooks(rows pgx.Rows) ([]*model.Book, error) {
	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate book rows: %w", err)
	}

	return books, nil
}
