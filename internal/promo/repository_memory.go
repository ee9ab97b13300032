package promo

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	promos map[string]*Promo
	byCode map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		promos: make(map[string]*Promo),
		byCode: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, promo *Promo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := *promo
	r.promos[row.ID] = &row
	r.byCode[row.Code] = row.ID
	return nil
}

func (r *InMemoryRepository) FindByCode(ctx context.Context, code string) (*Promo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	existing := *r.promos[id]
	return &existing, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Promo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Promo
	for _, p := range r.promos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *InMemoryRepository) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.promos[id]; ok {
		p.Status = status
	}
	return nil
}
