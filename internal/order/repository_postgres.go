package order

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

func (r *PostgresRepository) Create(ctx context.Context, order *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, restaurant_id, status,
			total, discount_amount, grand_total, promo_code,
			delivery_address, payment_method, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		order.ID,
		order.CustomerID,
		order.RestaurantID,
		order.Status,
		order.Total,
		order.DiscountAmount,
		order.GrandTotal,
		order.PromoCode,
		order.DeliveryAddress,
		order.PaymentMethod,
		order.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, line := range order.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_lines (
				id, order_id, item_id, kind, quantity,
				unit_price, total_price, instructions
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			line.ID,
			order.ID,
			line.ItemID,
			line.Kind,
			line.Quantity,
			line.UnitPrice,
			line.TotalPrice,
			line.Instructions,
		)
		if err != nil {
			return err
		}

		for _, additive := range line.Additives {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_line_additives (order_line_id, additive_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, line.ID, additive.ID)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Order, error) {
	order, err := r.scanOrder(r.db.QueryRow(ctx, `
		SELECT id, customer_id, restaurant_id, status,
		       total, discount_amount, grand_total, promo_code,
		       delivery_address, payment_method, created_at
		FROM orders
		WHERE id = $1
	`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) ListByCustomer(
	ctx context.Context,
	customerID string,
	limit, offset int,
) ([]Order, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders WHERE customer_id = $1
	`, customerID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, customer_id, restaurant_id, status,
		       total, discount_amount, grand_total, promo_code,
		       delivery_address, payment_method, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

func (r *PostgresRepository) scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.RestaurantID,
		&o.Status,
		&o.Total,
		&o.DiscountAmount,
		&o.GrandTotal,
		&o.PromoCode,
		&o.DeliveryAddress,
		&o.PaymentMethod,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) loadLines(ctx context.Context, order *Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, item_id, kind, quantity,
		       unit_price, total_price, instructions
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = []OrderLine{}
	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(
			&l.ID,
			&l.OrderID,
			&l.ItemID,
			&l.Kind,
			&l.Quantity,
			&l.UnitPrice,
			&l.TotalPrice,
			&l.Instructions,
		); err != nil {
			return err
		}
		order.Items = append(order.Items, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range order.Items {
		if err := r.loadLineAdditives(ctx, &order.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) loadLineAdditives(ctx context.Context, line *OrderLine) error {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.title, a.price
		FROM additives a
		JOIN order_line_additives ola ON ola.additive_id = a.id
		WHERE ola.order_line_id = $1
		ORDER BY a.title
	`, line.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a attribute.Additive
		if err := rows.Scan(&a.ID, &a.Title, &a.Price); err != nil {
			return err
		}
		line.Additives = append(line.Additives, a)
	}
	return rows.Err()
}
