package restaurant

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
			SELECT 1 FROM restaurants WHERE id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO restaurants (id, title, code, owner_id, logo_url, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		restaurant.ID,
		restaurant.Title,
		restaurant.Code,
		restaurant.OwnerID,
		restaurant.LogoURL,
		restaurant.IsAvailable,
	).Scan(&restaurant.CreatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Restaurant, error) {
	var res Restaurant
	err := r.db.QueryRow(ctx, `
		SELECT id, title, code, owner_id, logo_url, is_available,
		       rating, rating_count, created_at
		FROM restaurants
		WHERE id = $1
	`, id).Scan(
		&res.ID,
		&res.Title,
		&res.Code,
		&res.OwnerID,
		&res.LogoURL,
		&res.IsAvailable,
		&res.Rating,
		&res.RatingCount,
		&res.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PostgresRepository) List(
	ctx context.Context,
	skip, take int,
) ([]Restaurant, int, error) {

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, code, owner_id, logo_url, is_available,
		       rating, rating_count, created_at
		FROM restaurants
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`, skip, take)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var restaurants []Restaurant
	for rows.Next() {
		var res Restaurant
		if err := rows.Scan(
			&res.ID,
			&res.Title,
			&res.Code,
			&res.OwnerID,
			&res.LogoURL,
			&res.IsAvailable,
			&res.Rating,
			&res.RatingCount,
			&res.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		restaurants = append(restaurants, res)
	}
	return restaurants, total, rows.Err()
}

func (r *PostgresRepository) SetLogoURL(ctx context.Context, id, logoURL string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET logo_url = $1
		WHERE id = $2
	`, logoURL, id)
	return err
}

func (r *PostgresRepository) UpdateRating(
	ctx context.Context,
	id string,
	rating float64,
	ratingCount int,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET rating = $1, rating_count = $2
		WHERE id = $3
	`, rating, ratingCount, id)
	return err
}
