package catalog

import (
	"time"

	"quanan/internal/attribute"
	"quanan/internal/identifier"
)

// ItemKind separates foods from drinks. The two sides share one table and
// one assembler but draw from kind-scoped attribute and category spaces.
type ItemKind string

const (
	KindFood  ItemKind = "FOOD"
	KindDrink ItemKind = "DRINK"
)

func (k ItemKind) IDPrefix() string {
	if k == KindDrink {
		return identifier.PrefixDrink
	}
	return identifier.PrefixFood
}

func (k ItemKind) TagKind() attribute.Kind {
	if k == KindDrink {
		return attribute.DrinkTag
	}
	return attribute.FoodTag
}

func (k ItemKind) TypeKind() attribute.Kind {
	if k == KindDrink {
		return attribute.DrinkType
	}
	return attribute.FoodType
}

// Item is a sellable food or drink belonging to one restaurant and one
// category, carrying many-to-many links to its resolved attribute sets.
type Item struct {
	ID           string                     `json:"id"`
	Kind         ItemKind                   `json:"kind"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description,omitempty"`
	Price        float64                    `json:"price"`
	CategoryID   string                     `json:"category_id"`
	RestaurantID string                     `json:"restaurant_id"`
	Code         string                     `json:"code"`
	ImageURL     string                     `json:"image_url,omitempty"`
	IsAvailable  bool                       `json:"is_available"`
	Rating       float64                    `json:"rating"`
	RatingCount  int                        `json:"rating_count"`
	Tags         []attribute.NamedAttribute `json:"tags"`
	Types        []attribute.NamedAttribute `json:"types"`
	Additives    []attribute.Additive       `json:"additives"`
	CreatedAt    time.Time                  `json:"created_at"`
}

// HasAdditive reports whether the additive id belongs to the item's
// resolvable additive set.
func (i *Item) HasAdditive(id string) bool {
	for _, a := range i.Additives {
		if a.ID == id {
			return true
		}
	}
	return false
}

// ItemSpec is the validated request shape for create and update. Tags,
// types and additives arrive free-form and are normalized on every pass.
type ItemSpec struct {
	Title        string                    `json:"title"`
	Description  string                    `json:"description"`
	Price        float64                   `json:"price"`
	CategoryID   string                    `json:"category_id"`
	RestaurantID string                    `json:"restaurant_id"`
	Code         string                    `json:"code"`
	ImageURL     string                    `json:"image_url"`
	IsAvailable  bool                      `json:"is_available"`
	Tags         []string                  `json:"tags"`
	Types        []string                  `json:"types"`
	Additives    []attribute.AdditiveInput `json:"additives"`
}
