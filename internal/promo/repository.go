package promo

import "context"

type Repository interface {
	Create(ctx context.Context, promo *Promo) error
	// FindByCode returns (nil, nil) when no promo carries the code.
	FindByCode(ctx context.Context, code string) (*Promo, error)
	List(ctx context.Context) ([]Promo, error)
	SetStatus(ctx context.Context, id, status string) error
}
