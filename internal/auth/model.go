package auth

import "time"

// Roles known to the platform. The role decides the id prefix a user gets
// at registration.
const (
	RoleCustomer   = "CUSTOMER"
	RoleShipper    = "SHIPPER"
	RoleRestaurant = "RESTAURANT"
	RoleAdmin      = "ADMIN"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleShipper, RoleRestaurant, RoleAdmin:
		return true
	}
	return false
}

// User is the domain entity. Rating fields only carry meaning for shippers,
// where the rating aggregator writes them.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Role        string    `json:"role"`
	Rating      float64   `json:"rating,omitempty"`
	RatingCount int       `json:"rating_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
