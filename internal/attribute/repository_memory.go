package attribute

import (
	"context"
	"sync"
)

// InMemoryRepository backs the service tests, mirroring the Postgres
// uniqueness rules on (kind, name) and additive title.
type InMemoryRepository struct {
	mu         sync.Mutex
	attributes map[string]*NamedAttribute // id -> row
	byKindName map[string]string          // kind+"\x00"+name -> id
	additives  map[string]*Additive       // id -> row
	byTitle    map[string]string          // title -> id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		attributes: make(map[string]*NamedAttribute),
		byKindName: make(map[string]string),
		additives:  make(map[string]*Additive),
		byTitle:    make(map[string]string),
	}
}

func kindNameKey(kind Kind, name string) string {
	return string(kind) + "\x00" + name
}

func (r *InMemoryRepository) AttributeIDExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.attributes[id]
	return ok, nil
}

func (r *InMemoryRepository) AdditiveIDExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.additives[id]
	return ok, nil
}

func (r *InMemoryRepository) UpsertAttribute(
	ctx context.Context,
	attr *NamedAttribute,
) (*NamedAttribute, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	key := kindNameKey(attr.Kind, attr.Name)
	if id, ok := r.byKindName[key]; ok {
		existing := *r.attributes[id]
		return &existing, nil
	}

	row := &NamedAttribute{ID: attr.ID, Kind: attr.Kind, Name: attr.Name}
	r.attributes[row.ID] = row
	r.byKindName[key] = row.ID

	out := *row
	return &out, nil
}

func (r *InMemoryRepository) FindAdditiveByTitle(
	ctx context.Context,
	title string,
) (*Additive, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byTitle[title]
	if !ok {
		return nil, nil
	}
	existing := *r.additives[id]
	return &existing, nil
}

func (r *InMemoryRepository) CreateAdditive(ctx context.Context, additive *Additive) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := *additive
	r.additives[row.ID] = &row
	r.byTitle[row.Title] = row.ID
	return nil
}

func (r *InMemoryRepository) GetAdditive(ctx context.Context, id string) (*Additive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.additives[id]
	if !ok {
		return nil, nil
	}
	existing := *a
	return &existing, nil
}

func (r *InMemoryRepository) FindAdditivesByIDs(
	ctx context.Context,
	ids []string,
) ([]Additive, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Additive
	for _, id := range ids {
		if a, ok := r.additives[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

// AttributeCount reports how many attribute rows exist, for test assertions.
func (r *InMemoryRepository) AttributeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attributes)
}

// AdditiveCount reports how many additive rows exist, for test assertions.
func (r *InMemoryRepository) AdditiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.additives)
}
