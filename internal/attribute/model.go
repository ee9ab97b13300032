package attribute

// Kind partitions the name-keyed attribute space. Names are unique within a
// kind, not globally.
type Kind string

const (
	FoodTag   Kind = "FOOD_TAG"
	FoodType  Kind = "FOOD_TYPE"
	DrinkTag  Kind = "DRINK_TAG"
	DrinkType Kind = "DRINK_TYPE"
)

// Prefix is the id prefix rows of this kind are allocated under.
func (k Kind) Prefix() string {
	switch k {
	case FoodTag, DrinkTag:
		return "Tag"
	default:
		return "Type"
	}
}

// Label is the wording used in validation messages.
func (k Kind) Label() string {
	switch k {
	case FoodTag:
		return "food tags"
	case FoodType:
		return "food types"
	case DrinkTag:
		return "drink tags"
	default:
		return "drink types"
	}
}

// NamedAttribute is a reusable classification entity (tag or type) attached
// to catalog items many-to-many. Create-once, referenced-many; there is no
// deletion path.
type NamedAttribute struct {
	ID   string `json:"id"`
	Kind Kind   `json:"-"`
	Name string `json:"name"`
}

// Additive is a priced optional add-on. Identity is the title: two additives
// with the same title are the same entity, and the stored price wins over any
// price on a resubmission.
type Additive struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// AdditiveInput is the client-supplied title/price pair before resolution.
type AdditiveInput struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}
