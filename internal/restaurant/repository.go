package restaurant

import "context"

type Repository interface {
	IDExists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, restaurant *Restaurant) error
	Get(ctx context.Context, id string) (*Restaurant, error)
	List(ctx context.Context, skip, take int) ([]Restaurant, int, error)
	SetLogoURL(ctx context.Context, id, logoURL string) error

	// UpdateRating writes the recomputed aggregate; both fields are derived
	// from the live rating rows.
	UpdateRating(ctx context.Context, id string, rating float64, ratingCount int) error
}
