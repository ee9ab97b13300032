package category

import "context"

type Repository interface {
	IDExists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, category *Category) error
	Get(ctx context.Context, id string) (*Category, error)
	ListByKind(ctx context.Context, kind Kind) ([]Category, error)
}
