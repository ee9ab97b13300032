package attribute

import "context"

// Repository defines the store operations the normalizer needs. Upsert is
// atomic at the store layer (unique constraint + ON CONFLICT), so concurrent
// requests introducing the same name both land on one row.
type Repository interface {
	// Id probes for the allocator.
	AttributeIDExists(ctx context.Context, id string) (bool, error)
	AdditiveIDExists(ctx context.Context, id string) (bool, error)

	// UpsertAttribute inserts attr or, when (kind, name) is already taken,
	// returns the existing row. The passed-in id is only used on insert.
	UpsertAttribute(ctx context.Context, attr *NamedAttribute) (*NamedAttribute, error)

	// FindAdditiveByTitle returns (nil, nil) when no additive has the title.
	FindAdditiveByTitle(ctx context.Context, title string) (*Additive, error)

	// CreateAdditive surfaces the raw store error so the caller can detect a
	// unique-violation race on title.
	CreateAdditive(ctx context.Context, additive *Additive) error

	GetAdditive(ctx context.Context, id string) (*Additive, error)
	FindAdditivesByIDs(ctx context.Context, ids []string) ([]Additive, error)
}
