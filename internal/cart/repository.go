package cart

import "context"

type Repository interface {
	IDExists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, line *Line) error

	// FindByIdentity looks up the one active line for (user, item,
	// additive set); (nil, nil) when there is none.
	FindByIdentity(ctx context.Context, userID, itemID, additiveKey string) (*Line, error)

	Get(ctx context.Context, id string) (*Line, error)
	UpdateQuantity(ctx context.Context, id string, quantity int, totalPrice float64) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]Line, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
