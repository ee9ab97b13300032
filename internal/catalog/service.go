package catalog

import (
	"context"
	"log"
	"time"

	"quanan/internal/apperr"
	"quanan/internal/attribute"
	"quanan/internal/category"
	"quanan/internal/identifier"
)

// RestaurantDirectory answers whether a parent restaurant exists.
type RestaurantDirectory interface {
	IDExists(ctx context.Context, id string) (bool, error)
}

// CategoryDirectory resolves a category; (nil, nil) means unknown id.
type CategoryDirectory interface {
	Get(ctx context.Context, id string) (*category.Category, error)
}

// Cache is a read-through cache for item point lookups. A nil Cache is
// valid and disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const itemCacheTTL = 5 * time.Minute

// Service assembles catalog items: it validates the parent references,
// normalizes the free-form attribute lists, and persists the item with its
// links as one unit.
type Service struct {
	repo        Repository
	normalizer  *attribute.Normalizer
	restaurants RestaurantDirectory
	categories  CategoryDirectory
	cache       Cache
}

func NewService(
	repo Repository,
	normalizer *attribute.Normalizer,
	restaurants RestaurantDirectory,
	categories CategoryDirectory,
	cache Cache,
) *Service {
	return &Service{
		repo:        repo,
		normalizer:  normalizer,
		restaurants: restaurants,
		categories:  categories,
		cache:       cache,
	}
}

// --------------------------------------------------
// Create
// --------------------------------------------------
func (s *Service) CreateItem(ctx context.Context, kind ItemKind, spec ItemSpec) (*Item, error) {
	if spec.Title == "" || spec.Price <= 0 {
		return nil, apperr.BadRequest("title and a positive price are required")
	}

	id, err := identifier.Allocate(
		ctx,
		kind.IDPrefix(),
		identifier.ProberFunc(s.repo.IDExists),
	)
	if err != nil {
		return nil, err
	}

	item, err := s.assemble(ctx, id, kind, spec)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apperr.Internal(err)
	}

	return item, nil
}

// --------------------------------------------------
// Update (full-replace of attribute links)
// --------------------------------------------------
func (s *Service) UpdateItem(ctx context.Context, id string, spec ItemSpec) (*Item, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing == nil {
		return nil, apperr.NotFound("item %s not found", id)
	}

	item, err := s.assemble(ctx, id, existing.Kind, spec)
	if err != nil {
		return nil, err
	}
	item.Rating = existing.Rating
	item.RatingCount = existing.RatingCount
	item.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apperr.Internal(err)
	}

	s.invalidate(ctx, id)
	return item, nil
}

// assemble runs the shared validate-and-normalize pipeline. All validation
// happens before any write; the only side effects are the lazily created
// attribute rows, which are create-once entities by design.
func (s *Service) assemble(
	ctx context.Context,
	id string,
	kind ItemKind,
	spec ItemSpec,
) (*Item, error) {

	exists, err := s.restaurants.IDExists(ctx, spec.RestaurantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("restaurant %s not found", spec.RestaurantID)
	}

	cat, err := s.categories.Get(ctx, spec.CategoryID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cat == nil {
		return nil, apperr.NotFound("category %s not found", spec.CategoryID)
	}
	if string(cat.Kind) != string(kind) {
		return nil, apperr.BadRequest(
			"category %q is a %s category, not valid for a %s item",
			cat.Title, cat.Kind, kind,
		)
	}

	tags, err := s.normalizer.ResolveNames(ctx, spec.Tags, kind.TagKind())
	if err != nil {
		return nil, err
	}
	types, err := s.normalizer.ResolveNames(ctx, spec.Types, kind.TypeKind())
	if err != nil {
		return nil, err
	}
	additives, err := s.normalizer.ResolveAdditives(ctx, spec.Additives)
	if err != nil {
		return nil, err
	}

	return &Item{
		ID:           id,
		Kind:         kind,
		Title:        spec.Title,
		Description:  spec.Description,
		Price:        spec.Price,
		CategoryID:   spec.CategoryID,
		RestaurantID: spec.RestaurantID,
		Code:         spec.Code,
		ImageURL:     spec.ImageURL,
		IsAvailable:  spec.IsAvailable,
		Tags:         tags,
		Types:        types,
		Additives:    additives,
	}, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------
func (s *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	if s.cache != nil {
		var cached Item
		if hit, err := s.cache.Get(ctx, itemCacheKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if item == nil {
		return nil, apperr.NotFound("item %s not found", id)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, itemCacheKey(id), item, itemCacheTTL); err != nil {
			log.Printf("item cache set failed: %v", err)
		}
	}
	return item, nil
}

// GetItemOfKind is GetItem plus a kind check, for callers holding a
// kind-specific reference (cart, order).
func (s *Service) GetItemOfKind(ctx context.Context, kind ItemKind, id string) (*Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Kind != kind {
		return nil, apperr.NotFound("%s %s not found", kind, id)
	}
	return item, nil
}

func (s *Service) ListByRestaurant(
	ctx context.Context,
	restaurantID string,
	kind ItemKind,
	pageIndex, pageSize int,
) ([]Item, int, error) {

	exists, err := s.restaurants.IDExists(ctx, restaurantID)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("restaurant %s not found", restaurantID)
	}

	skip, take := pageWindow(pageIndex, pageSize)
	items, total, err := s.repo.ListByRestaurant(ctx, restaurantID, kind, skip, take)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return items, total, nil
}

func (s *Service) ListByCategoryAndCode(
	ctx context.Context,
	categoryID, code string,
	pageIndex, pageSize int,
) ([]Item, int, error) {

	cat, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	if cat == nil {
		return nil, 0, apperr.NotFound("category %s not found", categoryID)
	}

	skip, take := pageWindow(pageIndex, pageSize)
	items, total, err := s.repo.ListByCategoryAndCode(ctx, categoryID, code, skip, take)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return items, total, nil
}

func (s *Service) SearchItems(
	ctx context.Context,
	text string,
	pageIndex, pageSize int,
) ([]Item, int, error) {

	if text == "" {
		return nil, 0, apperr.BadRequest("search text is required")
	}

	skip, take := pageWindow(pageIndex, pageSize)
	items, total, err := s.repo.Search(ctx, text, skip, take)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return items, total, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if item == nil {
		return apperr.NotFound("item %s not found", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if item == nil {
		return apperr.NotFound("item %s not found", id)
	}

	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return apperr.Internal(err)
	}
	s.invalidate(ctx, id)
	return nil
}

// ApplyRating writes a recomputed rating aggregate onto an item.
func (s *Service) ApplyRating(ctx context.Context, id string, rating float64, ratingCount int) error {
	if err := s.repo.UpdateRating(ctx, id, rating, ratingCount); err != nil {
		return apperr.Internal(err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, itemCacheKey(id)); err != nil {
		log.Printf("item cache invalidation failed: %v", err)
	}
}

func itemCacheKey(id string) string { return "item:" + id }

func pageWindow(pageIndex, pageSize int) (skip, take int) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return (pageIndex - 1) * pageSize, pageSize
}
