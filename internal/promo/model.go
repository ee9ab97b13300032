package promo

import "time"

const (
	StatusActive   = "ACTIVE"
	StatusDisabled = "DISABLED"
)

// Promo is a flat-amount discount code redeemed at checkout.
type Promo struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	DiscountAmount float64    `json:"discount_amount"`
	Status         string     `json:"status"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Usable reports whether the promo can still be redeemed.
func (p *Promo) Usable(now time.Time) bool {
	if p.Status != StatusActive {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}
