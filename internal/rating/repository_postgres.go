package rating

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
			SELECT 1 FROM ratings WHERE id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) Create(ctx context.Context, rating *Rating) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ratings (
			id, user_id, target_type, target_id, score, comment, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		rating.ID,
		rating.UserID,
		rating.TargetType,
		rating.TargetID(),
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
	)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Rating, error) {
	rating, err := r.scanRating(r.db.QueryRow(ctx, `
		SELECT id, user_id, target_type, target_id, score, comment, created_at
		FROM ratings
		WHERE id = $1
	`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rating, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) Aggregate(
	ctx context.Context,
	targetType TargetType,
	targetID string,
) (float64, int, error) {

	var mean float64
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM ratings
		WHERE target_type = $1 AND target_id = $2
	`, targetType, targetID).Scan(&mean, &count)
	return mean, count, err
}

func (r *PostgresRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]Rating, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM ratings WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, target_type, target_id, score, comment, created_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		rating, err := r.scanRating(rows)
		if err != nil {
			return nil, 0, err
		}
		ratings = append(ratings, *rating)
	}
	return ratings, total, rows.Err()
}

func (r *PostgresRepository) scanRating(row pgx.Row) (*Rating, error) {
	var rt Rating
	var targetID string
	err := row.Scan(
		&rt.ID,
		&rt.UserID,
		&rt.TargetType,
		&targetID,
		&rt.Score,
		&rt.Comment,
		&rt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rt.setTargetID(targetID)
	return &rt, nil
}
