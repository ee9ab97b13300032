package catalog

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
			SELECT 1 FROM items WHERE id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}

// --------------------------------------------------
// Create item + links in one transaction
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO items (
			id, kind, title, description, price,
			category_id, restaurant_id, code, image_url, is_available
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`,
		item.ID,
		item.Kind,
		item.Title,
		item.Description,
		item.Price,
		item.CategoryID,
		item.RestaurantID,
		item.Code,
		item.ImageURL,
		item.IsAvailable,
	).Scan(&item.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertLinks(ctx, tx, item); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Update item, full-replace all links
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, item *Item) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE items
		SET title = $1, description = $2, price = $3, category_id = $4,
		    restaurant_id = $5, code = $6, image_url = $7, is_available = $8
		WHERE id = $9
	`,
		item.Title,
		item.Description,
		item.Price,
		item.CategoryID,
		item.RestaurantID,
		item.Code,
		item.ImageURL,
		item.IsAvailable,
		item.ID,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM item_attributes WHERE item_id = $1`, item.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM item_additives WHERE item_id = $1`, item.ID); err != nil {
		return err
	}
	if err := insertLinks(ctx, tx, item); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertLinks(ctx context.Context, tx pgx.Tx, item *Item) error {
	// Duplicate input names collapse to one entity; ON CONFLICT DO NOTHING
	// keeps the link rows a set.
	for _, attr := range append(append([]attribute.NamedAttribute{}, item.Tags...), item.Types...) {
		_, err := tx.Exec(ctx, `
			INSERT INTO item_attributes (item_id, attribute_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, item.ID, attr.ID)
		if err != nil {
			return err
		}
	}

	for _, additive := range item.Additives {
		_, err := tx.Exec(ctx, `
			INSERT INTO item_additives (item_id, additive_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, item.ID, additive.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

const itemColumns = `
	id, kind, title, description, price,
	category_id, restaurant_id, code, image_url, is_available,
	rating, rating_count, created_at
`

func scanItem(row pgx.Row) (*Item, error) {
	var i Item
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Title,
		&i.Description,
		&i.Price,
		&i.CategoryID,
		&i.RestaurantID,
		&i.Code,
		&i.ImageURL,
		&i.IsAvailable,
		&i.Rating,
		&i.RatingCount,
		&i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = $1
	`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadLinks(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PostgresRepository) loadLinks(ctx context.Context, item *Item) error {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.kind, a.name
		FROM named_attributes a
		JOIN item_attributes ia ON ia.attribute_id = a.id
		WHERE ia.item_id = $1
		ORDER BY a.name
	`, item.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	item.Tags = []attribute.NamedAttribute{}
	item.Types = []attribute.NamedAttribute{}
	for rows.Next() {
		var a attribute.NamedAttribute
		if err := rows.Scan(&a.ID, &a.Kind, &a.Name); err != nil {
			return err
		}
		if a.Kind == item.Kind.TagKind() {
			item.Tags = append(item.Tags, a)
		} else {
			item.Types = append(item.Types, a)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	addRows, err := r.db.Query(ctx, `
		SELECT ad.id, ad.title, ad.price
		FROM additives ad
		JOIN item_additives ia ON ia.additive_id = ad.id
		WHERE ia.item_id = $1
		ORDER BY ad.title
	`, item.ID)
	if err != nil {
		return err
	}
	defer addRows.Close()

	item.Additives = []attribute.Additive{}
	for addRows.Next() {
		var a attribute.Additive
		if err := addRows.Scan(&a.ID, &a.Title, &a.Price); err != nil {
			return err
		}
		item.Additives = append(item.Additives, a)
	}
	return addRows.Err()
}

func (r *PostgresRepository) collectItems(ctx context.Context, rows pgx.Rows) ([]Item, error) {
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Title,
			&i.Description,
			&i.Price,
			&i.CategoryID,
			&i.RestaurantID,
			&i.Code,
			&i.ImageURL,
			&i.IsAvailable,
			&i.Rating,
			&i.RatingCount,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for idx := range items {
		if err := r.loadLinks(ctx, &items[idx]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *PostgresRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID string,
	kind ItemKind,
	skip, take int,
) ([]Item, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM items
		WHERE restaurant_id = $1 AND kind = $2 AND is_available
	`, restaurantID, kind).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE restaurant_id = $1 AND kind = $2 AND is_available
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`, restaurantID, kind, skip, take)
	if err != nil {
		return nil, 0, err
	}

	items, err := r.collectItems(ctx, rows)
	return items, total, err
}

func (r *PostgresRepository) ListByCategoryAndCode(
	ctx context.Context,
	categoryID, code string,
	skip, take int,
) ([]Item, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM items
		WHERE category_id = $1 AND code = $2 AND is_available
	`, categoryID, code).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE category_id = $1 AND code = $2 AND is_available
		ORDER BY rating DESC
		OFFSET $3 LIMIT $4
	`, categoryID, code, skip, take)
	if err != nil {
		return nil, 0, err
	}

	items, err := r.collectItems(ctx, rows)
	return items, total, err
}

func (r *PostgresRepository) Search(
	ctx context.Context,
	text string,
	skip, take int,
) ([]Item, int, error) {

	pattern := "%" + text + "%"

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM items
		WHERE (title ILIKE $1 OR description ILIKE $1) AND is_available
	`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE (title ILIKE $1 OR description ILIKE $1) AND is_available
		ORDER BY rating DESC
		OFFSET $2 LIMIT $3
	`, pattern, skip, take)
	if err != nil {
		return nil, 0, err
	}

	items, err := r.collectItems(ctx, rows)
	return items, total, err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Links go, attribute and additive rows stay.
	if _, err := tx.Exec(ctx, `DELETE FROM item_attributes WHERE item_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM item_additives WHERE item_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	_, err := r.db.Exec(ctx, `
		UPDATE items
		SET is_available = $1
		WHERE id = $2
	`, available, id)
	return err
}

func (r *PostgresRepository) UpdateRating(
	ctx context.Context,
	id string,
	rating float64,
	ratingCount int,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE items
		SET rating = $1, rating_count = $2
		WHERE id = $3
	`, rating, ratingCount, id)
	return err
}
