package restaurant

import "time"

type Restaurant struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Code        string    `json:"code"`
	OwnerID     string    `json:"owner_id"`
	LogoURL     string    `json:"logo_url,omitempty"`
	IsAvailable bool      `json:"is_available"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
}
