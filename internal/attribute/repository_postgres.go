package attribute

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

func (r *PostgresRepository) AttributeIDExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM named_attributes WHERE id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) AdditiveIDExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM additives WHERE id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}

// --------------------------------------------------
// Atomic get-or-create keyed by (kind, name)
// --------------------------------------------------
func (r *PostgresRepository) UpsertAttribute(
	ctx context.Context,
	attr *NamedAttribute,
) (*NamedAttribute, error) {

	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict,
	// so the first writer's id always wins.
	row := r.db.QueryRow(ctx, `
		INSERT INTO named_attributes (id, kind, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, kind, name
	`, attr.ID, attr.Kind, attr.Name)

	var out NamedAttribute
	if err := row.Scan(&out.ID, &out.Kind, &out.Name); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostgresRepository) FindAdditiveByTitle(
	ctx context.Context,
	title string,
) (*Additive, error) {

	var a Additive
	err := r.db.QueryRow(ctx, `
		SELECT id, title, price
		FROM additives
		WHERE title = $1
	`, title).Scan(&a.ID, &a.Title, &a.Price)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) CreateAdditive(ctx context.Context, additive *Additive) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO additives (id, title, price)
		VALUES ($1, $2, $3)
	`, additive.ID, additive.Title, additive.Price)
	return err
}

func (r *PostgresRepository) GetAdditive(ctx context.Context, id string) (*Additive, error) {
	var a Additive
	err := r.db.QueryRow(ctx, `
		SELECT id, title, price
		FROM additives
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Title, &a.Price)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) FindAdditivesByIDs(
	ctx context.Context,
	ids []string,
) ([]Additive, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, price
		FROM additives
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var additives []Additive
	for rows.Next() {
		var a Additive
		if err := rows.Scan(&a.ID, &a.Title, &a.Price); err != nil {
			return nil, err
		}
		additives = append(additives, a)
	}
	return additives, rows.Err()
}
