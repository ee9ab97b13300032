package order

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[string]*Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]*Order)}
}

func (r *InMemoryRepository) Create(ctx context.Context, order *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := *order
	row.Items = append([]OrderLine(nil), order.Items...)
	r.orders[row.ID] = &row
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	existing := *order
	existing.Items = append([]OrderLine(nil), order.Items...)
	return &existing, nil
}

func (r *InMemoryRepository) ListByCustomer(
	ctx context.Context,
	customerID string,
	limit, offset int,
) ([]Order, int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var all []Order
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			copied := *order
			copied.Items = append([]OrderLine(nil), order.Items...)
			all = append(all, copied)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []Order{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order, ok := r.orders[id]; ok {
		order.Status = status
	}
	return nil
}
