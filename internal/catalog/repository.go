package catalog

import "context"

// Repository persists items together with their attribute links. Create and
// Update are atomic: the item row and its links land (or are replaced) in
// one transaction, so a failed link write never leaves a half-built item.
type Repository interface {
	IDExists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, item *Item) error

	// Update full-replaces the item row and all attribute links.
	Update(ctx context.Context, item *Item) error

	// Get returns (nil, nil) when the id is unknown. Links are loaded.
	Get(ctx context.Context, id string) (*Item, error)

	ListByRestaurant(ctx context.Context, restaurantID string, kind ItemKind, skip, take int) ([]Item, int, error)
	ListByCategoryAndCode(ctx context.Context, categoryID, code string, skip, take int) ([]Item, int, error)
	Search(ctx context.Context, text string, skip, take int) ([]Item, int, error)

	// Delete removes the item and its links; attribute rows stay.
	Delete(ctx context.Context, id string) error

	SetAvailability(ctx context.Context, id string, available bool) error
	UpdateRating(ctx context.Context, id string, rating float64, ratingCount int) error
}
