package identifier

import (
	"context"
	"fmt"
	"math/rand/v2"

	"quanan/internal/apperr"
)

// Prefixes for the human-readable ids handed out across the domain.
const (
	PrefixFood       = "FOOD"
	PrefixDrink      = "DRINK"
	PrefixTag        = "Tag"
	PrefixType       = "Type"
	PrefixAdditive   = "Add"
	PrefixCart       = "CART"
	PrefixRestaurant = "RES"
	PrefixRating     = "R"
	PrefixCategory   = "CAT"
)

// UserPrefix maps a user role to its id prefix.
func UserPrefix(role string) string {
	switch role {
	case "CUSTOMER":
		return "KH"
	case "SHIPPER":
		return "SH"
	case "RESTAURANT":
		return "ST"
	case "ADMIN":
		return "AD"
	default:
		return "US"
	}
}

// Prober answers whether an id already exists in the target collection.
type Prober interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, id string) (bool, error)

func (f ProberFunc) Exists(ctx context.Context, id string) (bool, error) {
	return f(ctx, id)
}

const maxAttempts = 50

// Allocate generates PREFIX_nnnnnn candidates (six random digits) and probes
// the collection until an unused one is found. The check-then-create window
// between probe and insert is accepted; the store's primary key is the final
// guard. After maxAttempts the prefix space is considered exhausted.
func Allocate(ctx context.Context, prefix string, probe Prober) (string, error) {
	for range maxAttempts {
		id := fmt.Sprintf("%s_%d", prefix, 100000+rand.IntN(900000))

		exists, err := probe.Exists(ctx, id)
		if err != nil {
			return "", apperr.Internal(err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", apperr.Internal(fmt.Errorf("id space exhausted for prefix %s after %d attempts", prefix, maxAttempts))
}
