package rating

import (
	"context"
	"time"

	"quanan/internal/apperr"
	"quanan/internal/catalog"
	"quanan/internal/identifier"
)

// ItemTarget resolves catalog items and receives their recomputed
// aggregates.
type ItemTarget interface {
	GetItemOfKind(ctx context.Context, kind catalog.ItemKind, id string) (*catalog.Item, error)
	ApplyRating(ctx context.Context, id string, rating float64, ratingCount int) error
}

// RestaurantTarget resolves restaurants and receives their recomputed
// aggregates.
type RestaurantTarget interface {
	IDExists(ctx context.Context, id string) (bool, error)
	ApplyRating(ctx context.Context, id string, rating float64, ratingCount int) error
}

// ShipperTarget resolves shipper users and receives their recomputed
// aggregates.
type ShipperTarget interface {
	ShipperExists(ctx context.Context, id string) (bool, error)
	ApplyShipperRating(ctx context.Context, id string, rating float64, ratingCount int) error
}

type SubmitRequest struct {
	TargetType   TargetType `json:"target_type"`
	FoodID       string     `json:"food_id"`
	DrinkID      string     `json:"drink_id"`
	RestaurantID string     `json:"restaurant_id"`
	ShipperID    string     `json:"shipper_id"`
	Score        float64    `json:"score"`
	Comment      string     `json:"comment"`
}

type Service struct {
	repo        Repository
	items       ItemTarget
	restaurants RestaurantTarget
	shippers    ShipperTarget
}

func NewService(
	repo Repository,
	items ItemTarget,
	restaurants RestaurantTarget,
	shippers ShipperTarget,
) *Service {
	return &Service{
		repo:        repo,
		items:       items,
		restaurants: restaurants,
		shippers:    shippers,
	}
}

// --------------------------------------------------
// Submit
// --------------------------------------------------
func (s *Service) SubmitRating(ctx context.Context, userID string, req SubmitRequest) (*Rating, error) {
	if !req.TargetType.Valid() {
		return nil, apperr.BadRequest("unknown target type %s", req.TargetType)
	}
	if req.Score < 1 || req.Score > 5 {
		return nil, apperr.BadRequest("score must be between 1 and 5")
	}

	targetID, err := singleTargetID(req)
	if err != nil {
		return nil, err
	}

	if err := s.targetExists(ctx, req.TargetType, targetID); err != nil {
		return nil, err
	}

	id, err := identifier.Allocate(
		ctx,
		identifier.PrefixRating,
		identifier.ProberFunc(s.repo.IDExists),
	)
	if err != nil {
		return nil, err
	}

	rating := &Rating{
		ID:         id,
		UserID:     userID,
		TargetType: req.TargetType,
		Score:      req.Score,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
	}
	rating.setTargetID(targetID)

	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.recompute(ctx, req.TargetType, targetID); err != nil {
		return nil, err
	}
	return rating, nil
}

// singleTargetID enforces that exactly one target id is set and that it
// matches the declared target type.
func singleTargetID(req SubmitRequest) (string, error) {
	set := map[TargetType]string{
		TargetFood:       req.FoodID,
		TargetDrink:      req.DrinkID,
		TargetRestaurant: req.RestaurantID,
		TargetShipper:    req.ShipperID,
	}

	count := 0
	for _, id := range set {
		if id != "" {
			count++
		}
	}
	if count != 1 {
		return "", apperr.BadRequest("exactly one target id must be set")
	}

	targetID := set[req.TargetType]
	if targetID == "" {
		return "", apperr.BadRequest("target id does not match target type %s", req.TargetType)
	}
	return targetID, nil
}

func (s *Service) targetExists(ctx context.Context, targetType TargetType, targetID string) error {
	switch targetType {
	case TargetFood:
		_, err := s.items.GetItemOfKind(ctx, catalog.KindFood, targetID)
		return err
	case TargetDrink:
		_, err := s.items.GetItemOfKind(ctx, catalog.KindDrink, targetID)
		return err
	case TargetRestaurant:
		exists, err := s.restaurants.IDExists(ctx, targetID)
		if err != nil {
			return apperr.Internal(err)
		}
		if !exists {
			return apperr.NotFound("restaurant %s not found", targetID)
		}
		return nil
	case TargetShipper:
		exists, err := s.shippers.ShipperExists(ctx, targetID)
		if err != nil {
			return apperr.Internal(err)
		}
		if !exists {
			return apperr.NotFound("shipper %s not found", targetID)
		}
		return nil
	}
	return apperr.BadRequest("unknown target type %s", targetType)
}

// recompute derives both the mean and the count from the live rows and
// pushes them onto the target. The count is never incremented in place, so
// deletions cannot drift it.
func (s *Service) recompute(ctx context.Context, targetType TargetType, targetID string) error {
	mean, count, err := s.repo.Aggregate(ctx, targetType, targetID)
	if err != nil {
		return apperr.Internal(err)
	}

	switch targetType {
	case TargetFood, TargetDrink:
		return s.items.ApplyRating(ctx, targetID, mean, count)
	case TargetRestaurant:
		return s.restaurants.ApplyRating(ctx, targetID, mean, count)
	case TargetShipper:
		return s.shippers.ApplyShipperRating(ctx, targetID, mean, count)
	}
	return nil
}

// --------------------------------------------------
// Delete and reads
// --------------------------------------------------
func (s *Service) DeleteRating(ctx context.Context, userID, ratingID string) error {
	rating, err := s.repo.Get(ctx, ratingID)
	if err != nil {
		return apperr.Internal(err)
	}
	if rating == nil {
		return apperr.NotFound("rating %s not found", ratingID)
	}
	if rating.UserID != userID {
		return apperr.Forbidden("rating %s does not belong to you", ratingID)
	}

	if err := s.repo.Delete(ctx, ratingID); err != nil {
		return apperr.Internal(err)
	}
	return s.recompute(ctx, rating.TargetType, rating.TargetID())
}

func (s *Service) CheckUserRating(
	ctx context.Context,
	userID string,
	pageIndex, pageSize int,
) ([]Rating, int, error) {

	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	ratings, total, err := s.repo.ListByUser(ctx, userID, pageSize, (pageIndex-1)*pageSize)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	if ratings == nil {
		ratings = []Rating{}
	}
	return ratings, total, nil
}
