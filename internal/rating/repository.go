package rating

import "context"

type Repository interface {
	IDExists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, rating *Rating) error
	// Get returns (nil, nil) when no rating carries the id.
	Get(ctx context.Context, id string) (*Rating, error)
	Delete(ctx context.Context, id string) error
	// Aggregate recomputes mean and count over the live rows for a target.
	// An unrated target yields (0, 0).
	Aggregate(ctx context.Context, targetType TargetType, targetID string) (float64, int, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Rating, int, error)
}
