package rating

import "time"

type TargetType string

const (
	TargetFood       TargetType = "FOOD"
	TargetDrink      TargetType = "DRINK"
	TargetRestaurant TargetType = "RESTAURANT"
	TargetShipper    TargetType = "SHIPPER"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetFood, TargetDrink, TargetRestaurant, TargetShipper:
		return true
	}
	return false
}

// Rating scores exactly one target, matching its TargetType.
type Rating struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	TargetType   TargetType `json:"target_type"`
	FoodID       string     `json:"food_id,omitempty"`
	DrinkID      string     `json:"drink_id,omitempty"`
	RestaurantID string     `json:"restaurant_id,omitempty"`
	ShipperID    string     `json:"shipper_id,omitempty"`
	Score        float64    `json:"score"`
	Comment      string     `json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TargetID returns the single target id the rating points at.
func (r *Rating) TargetID() string {
	switch r.TargetType {
	case TargetFood:
		return r.FoodID
	case TargetDrink:
		return r.DrinkID
	case TargetRestaurant:
		return r.RestaurantID
	case TargetShipper:
		return r.ShipperID
	}
	return ""
}

func (r *Rating) setTargetID(id string) {
	switch r.TargetType {
	case TargetFood:
		r.FoodID = id
	case TargetDrink:
		r.DrinkID = id
	case TargetRestaurant:
		r.RestaurantID = id
	case TargetShipper:
		r.ShipperID = id
	}
}
