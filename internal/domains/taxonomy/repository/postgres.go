package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookspace-backend/internal/domains/taxonomy/model"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

// tableFor maps an entity kind to its table and label column.
func tableFor(kind model.Kind) (table, labelColumn string, err error) {
	switch kind {
	case model.KindGenre:
		return "genres", "name", nil
	case model.KindTag:
		return "tags", "value", nil
	default:
		return "", "", model.NewInvalidKindError(string(kind))
	}
}

func linkTableFor(kind model.Kind) (table, entityColumn string, err error) {
	switch kind {
	case model.KindGenre:
		return "book_genres", "genre_id", nil
	case model.KindTag:
		return "book_tags", "tag_id", nil
	default:
		return "", "", model.NewInvalidKindError(string(kind))
	}
}

func (s *postgresStore) FindByLabel(ctx context.Context, kind model.Kind, label string) (*model.Entity, error) {
	table, labelColumn, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE %s = $1`, labelColumn, table, labelColumn)

	entity := &model.Entity{Kind: kind}
	err = s.pool.QueryRow(ctx, query, label).Scan(&entity.ID, &entity.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to find %s by label: %w", kind, err)
	}

	return entity, nil
}

func (s *postgresStore) Create(ctx context.Context, entity *model.Entity) error {
	table, labelColumn, err := tableFor(entity.Kind)
	if err != nil {
		return err
	}

	// Conditional insert: a concurrent first-use of the same label cannot
	// produce two rows. The loser of the race re-reads and adopts the
	// winner's id.
	query := fmt.Sprintf(
		`INSERT INTO %s (id, %s) VALUES ($1, $2) ON CONFLICT (%s) DO NOTHING`,
		table, labelColumn, labelColumn,
	)

	tag, err := s.pool.Exec(ctx, query, entity.ID, entity.Label)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", entity.Kind, err)
	}

	if tag.RowsAffected() == 0 {
		existing, err := s.FindByLabel(ctx, entity.Kind, entity.Label)
		if err != nil {
			return fmt.Errorf("failed to read conflicting %s: %w", entity.Kind, err)
		}
		entity.ID = existing.ID
	}

	return nil
}

func (s *postgresStore) CreateLink(ctx context.Context, bookID uuid.UUID, entityID string, kind model.Kind) error {
	table, entityColumn, err := linkTableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (book_id, %s) VALUES ($1, $2)`, table, entityColumn)

	if _, err := s.pool.Exec(ctx, query, bookID, entityID); err != nil {
		return fmt.Errorf("failed to link %s to book: %w", kind, err)
	}

	return nil
}

func (s *postgresStore) ListByBook(ctx context.Context, bookID uuid.UUID, kind model.Kind) ([]*model.Entity, error) {
	table, labelColumn, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	linkTable, entityColumn, err := linkTableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.%s
		FROM %s e
		JOIN %s l ON l.%s = e.id
		WHERE l.book_id = $1
		ORDER BY e.%s
	`, labelColumn, table, linkTable, entityColumn, labelColumn)

	rows, err := s.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s for book: %w", kind, err)
	}
	defer rows.Close()

	var entities []*model.Entity
	for rows.Next() {
		entity := &model.Entity{Kind: kind}
		if err := rows.Scan(&entity.ID, &entity.Label); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", kind, err)
	}

	return entities, nil
}
