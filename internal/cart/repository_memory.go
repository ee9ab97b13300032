package cart

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu    sync.Mutex
	lines map[string]*Line
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{lines: make(map[string]*Line)}
}

func (r *InMemoryRepository) IDExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.lines[id]
	return ok, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, line *Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := *line
	r.lines[row.ID] = &row
	return nil
}

func (r *InMemoryRepository) FindByIdentity(
	ctx context.Context,
	userID, itemID, additiveKey string,
) (*Line, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, line := range r.lines {
		if line.UserID == userID && line.ItemID == itemID && line.Key() == additiveKey {
			existing := *line
			return &existing, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	existing := *line
	return &existing, nil
}

func (r *InMemoryRepository) UpdateQuantity(
	ctx context.Context,
	id string,
	quantity int,
	totalPrice float64,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if line, ok := r.lines[id]; ok {
		line.Quantity = quantity
		line.TotalPrice = totalPrice
	}
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, id)
	return nil
}

func (r *InMemoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, line := range r.lines {
		if line.UserID == userID {
			delete(r.lines, id)
		}
	}
	return nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Line
	for _, line := range r.lines {
		if line.UserID == userID {
			out = append(out, *line)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, line := range r.lines {
		if line.UserID == userID {
			count++
		}
	}
	return count, nil
}
