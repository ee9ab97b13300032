package promo

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

func (r *PostgresRepository) Create(ctx context.Context, promo *Promo) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO promos (id, code, discount_amount, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		promo.ID,
		promo.Code,
		promo.DiscountAmount,
		promo.Status,
		promo.ExpiresAt,
		promo.CreatedAt,
	)
	return err
}

func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*Promo, error) {
	var p Promo
	err := r.db.QueryRow(ctx, `
		SELECT id, code, discount_amount, status, expires_at, created_at
		FROM promos
		WHERE code = $1
	`, code).Scan(
		&p.ID,
		&p.Code,
		&p.DiscountAmount,
		&p.Status,
		&p.ExpiresAt,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Promo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, discount_amount, status, expires_at, created_at
		FROM promos
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []Promo
	for rows.Next() {
		var p Promo
		if err := rows.Scan(
			&p.ID,
			&p.Code,
			&p.DiscountAmount,
			&p.Status,
			&p.ExpiresAt,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id, status string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE promos SET status = $1 WHERE id = $2
	`, status, id)
	return err
}
