package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) IDExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories WHERE id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) Create(ctx context.Context, category *Category) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, title, value, kind, image_url)
		VALUES ($1, $2, $3, $4, $5)
	`, category.ID, category.Title, category.Value, category.Kind, category.ImageURL)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, title, value, kind, image_url
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Title, &c.Value, &c.Kind, &c.ImageURL)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) ListByKind(ctx context.Context, kind Kind) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, value, kind, image_url
		FROM categories
		WHERE kind = $1
		ORDER BY title
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Value, &c.Kind, &c.ImageURL); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
