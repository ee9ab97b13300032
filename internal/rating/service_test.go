package rating

import (
	"context"
	"math"
	"testing"

	"quanan/internal/apperr"
	"quanan/internal/catalog"
)

type applied struct {
	rating float64
	count  int
}

type fakeItemTarget struct {
	items map[string]catalog.ItemKind
	seen  map[string]applied
}

func (f *fakeItemTarget) GetItemOfKind(
	ctx context.Context,
	kind catalog.ItemKind,
	id string,
) (*catalog.Item, error) {

	got, ok := f.items[id]
	if !ok || got != kind {
		return nil, apperr.NotFound("%s %s not found", kind, id)
	}
	return &catalog.Item{ID: id, Kind: kind}, nil
}

func (f *fakeItemTarget) ApplyRating(ctx context.Context, id string, rating float64, count int) error {
	f.seen[id] = applied{rating: rating, count: count}
	return nil
}

type fakeRestaurantTarget struct {
	ids  map[string]bool
	seen map[string]applied
}

func (f *fakeRestaurantTarget) IDExists(ctx context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

func (f *fakeRestaurantTarget) ApplyRating(ctx context.Context, id string, rating float64, count int) error {
	f.seen[id] = applied{rating: rating, count: count}
	return nil
}

type fakeShipperTarget struct {
	ids  map[string]bool
	seen map[string]applied
}

func (f *fakeShipperTarget) ShipperExists(ctx context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

func (f *fakeShipperTarget) ApplyShipperRating(ctx context.Context, id string, rating float64, count int) error {
	f.seen[id] = applied{rating: rating, count: count}
	return nil
}

func newTestService() (*Service, *fakeItemTarget, *fakeRestaurantTarget, *fakeShipperTarget) {
	items := &fakeItemTarget{
		items: map[string]catalog.ItemKind{
			"FOOD_100001":  catalog.KindFood,
			"DRINK_100001": catalog.KindDrink,
		},
		seen: make(map[string]applied),
	}
	restaurants := &fakeRestaurantTarget{
		ids:  map[string]bool{"RES_100001": true},
		seen: make(map[string]applied),
	}
	shippers := &fakeShipperTarget{
		ids:  map[string]bool{"SH_100001": true},
		seen: make(map[string]applied),
	}
	service := NewService(NewInMemoryRepository(), items, restaurants, shippers)
	return service, items, restaurants, shippers
}

func submitRestaurant(t *testing.T, service *Service, userID string, score float64) *Rating {
	t.Helper()
	rating, err := service.SubmitRating(context.Background(), userID, SubmitRequest{
		TargetType:   TargetRestaurant,
		RestaurantID: "RES_100001",
		Score:        score,
	})
	if err != nil {
		t.Fatalf("submit score %.0f: %v", score, err)
	}
	return rating
}

func TestSubmitRatingRecomputesMeanAndCount(t *testing.T) {
	service, _, restaurants, _ := newTestService()

	submitRestaurant(t, service, "KH_1", 4)
	submitRestaurant(t, service, "KH_2", 2)

	got := restaurants.seen["RES_100001"]
	if got.rating != 3.0 || got.count != 2 {
		t.Fatalf("expected mean 3.0 count 2, got %.4f / %d", got.rating, got.count)
	}

	submitRestaurant(t, service, "KH_3", 5)

	got = restaurants.seen["RES_100001"]
	if math.Abs(got.rating-11.0/3.0) > 1e-9 || got.count != 3 {
		t.Fatalf("expected mean 11/3 count 3, got %.4f / %d", got.rating, got.count)
	}
}

func TestSubmitRatingFoodTarget(t *testing.T) {
	service, items, _, _ := newTestService()

	rating, err := service.SubmitRating(context.Background(), "KH_1", SubmitRequest{
		TargetType: TargetFood,
		FoodID:     "FOOD_100001",
		Score:      5,
		Comment:    "best pho in town",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rating.ID == "" || rating.ID[:2] != "R_" {
		t.Fatalf("expected R_ prefixed id, got %q", rating.ID)
	}

	got := items.seen["FOOD_100001"]
	if got.rating != 5.0 || got.count != 1 {
		t.Fatalf("expected mean 5.0 count 1, got %.4f / %d", got.rating, got.count)
	}
}

func TestSubmitRatingShipperTarget(t *testing.T) {
	service, _, _, shippers := newTestService()

	if _, err := service.SubmitRating(context.Background(), "KH_1", SubmitRequest{
		TargetType: TargetShipper,
		ShipperID:  "SH_100001",
		Score:      4,
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got := shippers.seen["SH_100001"]
	if got.rating != 4.0 || got.count != 1 {
		t.Fatalf("expected mean 4.0 count 1, got %.4f / %d", got.rating, got.count)
	}
}

func TestSubmitRatingValidation(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.SubmitRating(ctx, "KH_1", SubmitRequest{
		TargetType: TargetRestaurant,
		Score:      3,
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for no target id, got %v", err)
	}

	_, err = service.SubmitRating(ctx, "KH_1", SubmitRequest{
		TargetType:   TargetRestaurant,
		RestaurantID: "RES_100001",
		FoodID:       "FOOD_100001",
		Score:        3,
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for two target ids, got %v", err)
	}

	// Declared type and supplied id must agree.
	_, err = service.SubmitRating(ctx, "KH_1", SubmitRequest{
		TargetType: TargetRestaurant,
		FoodID:     "FOOD_100001",
		Score:      3,
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for mismatched target, got %v", err)
	}

	_, err = service.SubmitRating(ctx, "KH_1", SubmitRequest{
		TargetType:   TargetRestaurant,
		RestaurantID: "RES_100001",
		Score:        6,
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for score out of range, got %v", err)
	}

	_, err = service.SubmitRating(ctx, "KH_1", SubmitRequest{
		TargetType:   TargetRestaurant,
		RestaurantID: "RES_999999",
		Score:        3,
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown restaurant, got %v", err)
	}
}

func TestDeleteRatingRecomputes(t *testing.T) {
	service, _, restaurants, _ := newTestService()
	ctx := context.Background()

	submitRestaurant(t, service, "KH_1", 4)
	low := submitRestaurant(t, service, "KH_2", 2)

	if err := service.DeleteRating(ctx, "KH_2", low.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got := restaurants.seen["RES_100001"]
	if got.rating != 4.0 || got.count != 1 {
		t.Fatalf("expected mean 4.0 count 1 after delete, got %.4f / %d", got.rating, got.count)
	}
}

func TestDeleteRatingOwnership(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	rating := submitRestaurant(t, service, "KH_1", 4)

	if err := service.DeleteRating(ctx, "KH_2", rating.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden for foreign caller, got %v", err)
	}
	if err := service.DeleteRating(ctx, "KH_1", "R_999999"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown rating, got %v", err)
	}
}

func TestCheckUserRatingPagination(t *testing.T) {
	service, _, _, _ := newTestService()

	for i := 0; i < 5; i++ {
		submitRestaurant(t, service, "KH_1", 3)
	}
	submitRestaurant(t, service, "KH_2", 3)

	ratings, total, err := service.CheckUserRating(context.Background(), "KH_1", 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(ratings) != 2 {
		t.Fatalf("expected page of 2, got %d", len(ratings))
	}
}
