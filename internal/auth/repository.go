package auth

import "context"

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	IDExists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindByEmail and FindByID return (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateRating(ctx context.Context, id string, rating float64, ratingCount int) error
}
