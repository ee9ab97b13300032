package category

// Kind tells which side of the catalog a category belongs to. An item may
// only reference a category of its own kind.
type Kind string

const (
	KindFood  Kind = "FOOD"
	KindDrink Kind = "DRINK"
)

type Category struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Value    string `json:"value"`
	Kind     Kind   `json:"kind"`
	ImageURL string `json:"image_url,omitempty"`
}
