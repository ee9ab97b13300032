package rating

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu      sync.Mutex
	ratings map[string]*Rating
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{ratings: make(map[string]*Rating)}
}

func (r *InMemoryRepository) IDExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ratings[id]
	return ok, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, rating *Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := *rating
	r.ratings[row.ID] = &row
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok {
		return nil, nil
	}
	existing := *rating
	return &existing, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ratings, id)
	return nil
}

func (r *InMemoryRepository) Aggregate(
	ctx context.Context,
	targetType TargetType,
	targetID string,
) (float64, int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	sum := 0.0
	count := 0
	for _, rating := range r.ratings {
		if rating.TargetType == targetType && rating.TargetID() == targetID {
			sum += rating.Score
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

func (r *InMemoryRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]Rating, int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var all []Rating
	for _, rating := range r.ratings {
		if rating.UserID == userID {
			all = append(all, *rating)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []Rating{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
