package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu    sync.Mutex
	items map[string]*Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*Item)}
}

func (r *InMemoryRepository) IDExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.CreatedAt = time.Now()
	row := *item
	r.items[row.ID] = &row
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[item.ID]; ok {
		item.CreatedAt = existing.CreatedAt
		item.Rating = existing.Rating
		item.RatingCount = existing.RatingCount
	}
	row := *item
	r.items[row.ID] = &row
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	existing := *item
	return &existing, nil
}

func (r *InMemoryRepository) list(match func(*Item) bool, skip, take int) ([]Item, int) {
	var all []Item
	for _, item := range r.items {
		if item.IsAvailable && match(item) {
			all = append(all, *item)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	if skip >= total {
		return nil, total
	}
	end := skip + take
	if end > total {
		end = total
	}
	return all[skip:end], total
}

func (r *InMemoryRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID string,
	kind ItemKind,
	skip, take int,
) ([]Item, int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	items, total := r.list(func(i *Item) bool {
		return i.RestaurantID == restaurantID && i.Kind == kind
	}, skip, take)
	return items, total, nil
}

func (r *InMemoryRepository) ListByCategoryAndCode(
	ctx context.Context,
	categoryID, code string,
	skip, take int,
) ([]Item, int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	items, total := r.list(func(i *Item) bool {
		return i.CategoryID == categoryID && i.Code == code
	}, skip, take)
	return items, total, nil
}

func (r *InMemoryRepository) Search(
	ctx context.Context,
	text string,
	skip, take int,
) ([]Item, int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(text)
	items, total := r.list(func(i *Item) bool {
		return strings.Contains(strings.ToLower(i.Title), needle) ||
			strings.Contains(strings.ToLower(i.Description), needle)
	}, skip, take)
	return items, total, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.items[id]; ok {
		item.IsAvailable = available
	}
	return nil
}

func (r *InMemoryRepository) UpdateRating(
	ctx context.Context,
	id string,
	rating float64,
	ratingCount int,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.items[id]; ok {
		item.Rating = rating
		item.RatingCount = ratingCount
	}
	return nil
}
