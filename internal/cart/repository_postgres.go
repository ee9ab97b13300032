package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quanan/internal/attribute"
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
			SELECT 1 FROM cart_lines WHERE id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) Create(ctx context.Context, line *Line) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// additive_key carries UNIQUE(user_id, item_id, additive_key), so a
	// racing duplicate add lands on the constraint instead of forking the
	// logical line.
	_, err = tx.Exec(ctx, `
		INSERT INTO cart_lines (
			id, user_id, item_id, kind, quantity,
			unit_price, total_price, additive_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		line.ID,
		line.UserID,
		line.ItemID,
		line.Kind,
		line.Quantity,
		line.UnitPrice,
		line.TotalPrice,
		line.Key(),
	)
	if err != nil {
		return err
	}

	for _, additive := range line.Additives {
		_, err := tx.Exec(ctx, `
			INSERT INTO cart_line_additives (cart_line_id, additive_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, line.ID, additive.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) FindByIdentity(
	ctx context.Context,
	userID, itemID, additiveKey string,
) (*Line, error) {

	line, err := r.scanLine(r.db.QueryRow(ctx, `
		SELECT id, user_id, item_id, kind, quantity, unit_price, total_price
		FROM cart_lines
		WHERE user_id = $1 AND item_id = $2 AND additive_key = $3
	`, userID, itemID, additiveKey))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadAdditives(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Line, error) {
	line, err := r.scanLine(r.db.QueryRow(ctx, `
		SELECT id, user_id, item_id, kind, quantity, unit_price, total_price
		FROM cart_lines
		WHERE id = $1
	`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadAdditives(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (r *PostgresRepository) scanLine(row pgx.Row) (*Line, error) {
	var l Line
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.ItemID,
		&l.Kind,
		&l.Quantity,
		&l.UnitPrice,
		&l.TotalPrice,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresRepository) loadAdditives(ctx context.Context, line *Line) error {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.title, a.price
		FROM additives a
		JOIN cart_line_additives cla ON cla.additive_id = a.id
		WHERE cla.cart_line_id = $1
		ORDER BY a.title
	`, line.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	line.Additives = []attribute.Additive{}
	for rows.Next() {
		var a attribute.Additive
		if err := rows.Scan(&a.ID, &a.Title, &a.Price); err != nil {
			return err
		}
		line.Additives = append(line.Additives, a)
	}
	return rows.Err()
}

func (r *PostgresRepository) UpdateQuantity(
	ctx context.Context,
	id string,
	quantity int,
	totalPrice float64,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE cart_lines
		SET quantity = $1, total_price = $2
		WHERE id = $3
	`, quantity, totalPrice, id)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_line_additives WHERE cart_line_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM cart_line_additives
		WHERE cart_line_id IN (
			SELECT id FROM cart_lines WHERE user_id = $1
		)
	`, userID)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, item_id, kind, quantity, unit_price, total_price
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.ItemID,
			&l.Kind,
			&l.Quantity,
			&l.UnitPrice,
			&l.TotalPrice,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lines {
		if err := r.loadAdditives(ctx, &lines[i]); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM cart_lines WHERE user_id = $1
	`, userID).Scan(&count)
	return count, err
}
