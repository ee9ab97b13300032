package restaurant

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu          sync.Mutex
	restaurants map[string]*Restaurant
	byCode      map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		restaurants: make(map[string]*Restaurant),
		byCode:      make(map[string]string),
	}
}

func (r *InMemoryRepository) IDExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.restaurants[id]
	return ok, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byCode[restaurant.Code]; taken {
		return fmt.Errorf("restaurant code %s already exists", restaurant.Code)
	}

	restaurant.CreatedAt = time.Now()
	row := *restaurant
	r.restaurants[row.ID] = &row
	r.byCode[row.Code] = row.ID
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.restaurants[id]
	if !ok {
		return nil, nil
	}
	existing := *res
	return &existing, nil
}

func (r *InMemoryRepository) List(
	ctx context.Context,
	skip, take int,
) ([]Restaurant, int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var all []Restaurant
	for _, res := range r.restaurants {
		all = append(all, *res)
	}

	total := len(all)
	if skip >= total {
		return nil, total, nil
	}
	end := skip + take
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (r *InMemoryRepository) SetLogoURL(ctx context.Context, id, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.restaurants[id]; ok {
		res.LogoURL = logoURL
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

	if res, ok := r.restaurants[id]; ok {
		res.Rating = rating
		res.RatingCount = ratingCount
	}
	return nil
}
