package order

import "context"

type Repository interface {
	// Create persists the order and all of its lines atomically.
	Create(ctx context.Context, order *Order) error
	// Get returns (nil, nil) when no order carries the id.
	Get(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
