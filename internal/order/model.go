package order

import (
	"time"

	"quanan/internal/attribute"
	"quanan/internal/catalog"
)

const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusPreparing  = "PREPARING"
	StatusDelivering = "DELIVERING"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusPreparing:  true,
	StatusDelivering: true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	RestaurantID    string      `json:"restaurant_id"`
	Status          string      `json:"status"`
	Total           float64     `json:"total"`
	DiscountAmount  float64     `json:"discount_amount"`
	GrandTotal      float64     `json:"grand_total"`
	PromoCode       string      `json:"promo_code,omitempty"`
	DeliveryAddress string      `json:"delivery_address"`
	PaymentMethod   string      `json:"payment_method"`
	Items           []OrderLine `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderLine snapshots the price of one item at the moment the order was
// placed. UnitPrice and TotalPrice never change after that, whatever happens
// to the catalog.
type OrderLine struct {
	ID           string               `json:"id"`
	OrderID      string               `json:"order_id"`
	ItemID       string               `json:"item_id"`
	Kind         catalog.ItemKind     `json:"kind"`
	Quantity     int                  `json:"quantity"`
	UnitPrice    float64              `json:"unit_price"`
	TotalPrice   float64              `json:"total_price"`
	Instructions string               `json:"instructions,omitempty"`
	Additives    []attribute.Additive `json:"additives,omitempty"`
}
