package category

import (
	"context"
	"fmt"
	"sync"
)

type InMemoryRepository struct {
	mu         sync.Mutex
	categories map[string]*Category
	byValue    map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		categories: make(map[string]*Category),
		byValue:    make(map[string]string),
	}
}

func (r *InMemoryRepository) IDExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.categories[id]
	return ok, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, category *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byValue[category.Value]; taken {
		return fmt.Errorf("category value %s already exists", category.Value)
	}

	row := *category
	r.categories[row.ID] = &row
	r.byValue[row.Value] = row.ID
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	existing := *c
	return &existing, nil
}

func (r *InMemoryRepository) ListByKind(ctx context.Context, kind Kind) ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Category
	for _, c := range r.categories {
		if c.Kind == kind {
			out = append(out, *c)
		}
	}
	return out, nil
}
