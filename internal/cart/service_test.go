package cart

import (
	"context"
	"testing"

	"quanan/internal/apperr"
	"quanan/internal/attribute"
	"quanan/internal/catalog"
)

type fakeItems struct {
	items map[string]*catalog.Item
}

func (f *fakeItems) GetItemOfKind(
	ctx context.Context,
	kind catalog.ItemKind,
	id string,
) (*catalog.Item, error) {

	item, ok := f.items[id]
	if !ok || item.Kind != kind {
		return nil, apperr.NotFound("%s %s not found", kind, id)
	}
	copied := *item
	return &copied, nil
}

func newTestService() (*Service, *InMemoryRepository, *fakeItems) {
	repo := NewInMemoryRepository()
	items := &fakeItems{items: map[string]*catalog.Item{
		"FOOD_100001": {
			ID:    "FOOD_100001",
			Kind:  catalog.KindFood,
			Title: "Pho Bo",
			Price: 10.0,
			Additives: []attribute.Additive{
				{ID: "Add_100001", Title: "extra beef", Price: 2.0},
				{ID: "Add_100002", Title: "extra noodles", Price: 1.0},
			},
		},
		"DRINK_100001": {
			ID:    "DRINK_100001",
			Kind:  catalog.KindDrink,
			Title: "Iced Tea",
			Price: 3.0,
		},
	}}
	return NewService(repo, items), repo, items
}

func TestAddToCartComputesTotal(t *testing.T) {
	service, _, _ := newTestService()

	line, err := service.AddToCart(context.Background(), "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    2,
		AdditiveIDs: []string{"Add_100001"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (10 + 2) * 2
	if line.UnitPrice != 12.0 {
		t.Fatalf("expected unit price 12.0, got %.2f", line.UnitPrice)
	}
	if line.TotalPrice != 24.0 {
		t.Fatalf("expected total 24.0, got %.2f", line.TotalPrice)
	}
}

func TestAddToCartRequiresExactlyOneItemRef(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.AddToCart(ctx, "KH_1", AddRequest{Quantity: 1})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for neither ref, got %v", err)
	}

	_, err = service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		DrinkID:  "DRINK_100001",
		Quantity: 1,
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for both refs, got %v", err)
	}
}

func TestAddToCartRejectsForeignAdditive(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.AddToCart(context.Background(), "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    1,
		AdditiveIDs: []string{"Add_999999"},
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for foreign additive, got %v", err)
	}
}

func TestAddToCartRepeatedAdditiveIDPricedOnce(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	line, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    1,
		AdditiveIDs: []string{"Add_100001", "Add_100001"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// 10 + 2, not 10 + 2 + 2.
	if line.UnitPrice != 12.0 {
		t.Fatalf("expected unit price 12.0, got %.2f", line.UnitPrice)
	}
	if len(line.Additives) != 1 {
		t.Fatalf("expected one additive on the line, got %d", len(line.Additives))
	}

	// {A, A} and {A} are the same set, so this merges instead of forking.
	merged, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    2,
		AdditiveIDs: []string{"Add_100001"},
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if merged.ID != line.ID {
		t.Fatalf("expected merge into line %s, got new line %s", line.ID, merged.ID)
	}
	if merged.Quantity != 3 || merged.TotalPrice != 36.0 {
		t.Fatalf("expected quantity 3 total 36.0, got %d / %.2f", merged.Quantity, merged.TotalPrice)
	}

	count, _ := repo.CountByUser(ctx, "KH_1")
	if count != 1 {
		t.Fatalf("expected one line, got %d", count)
	}
}

func TestAddToCartMergesIdenticalAdditiveSet(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	first, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    2,
		AdditiveIDs: []string{"Add_100001", "Add_100002"},
	})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}

	// Same set in a different order must merge, not fork.
	second, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    3,
		AdditiveIDs: []string{"Add_100002", "Add_100001"},
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected merge into line %s, got new line %s", first.ID, second.ID)
	}
	if second.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", second.Quantity)
	}
	if second.TotalPrice != second.UnitPrice*5 {
		t.Fatalf("total %.2f does not match unit %.2f * 5", second.TotalPrice, second.UnitPrice)
	}

	count, _ := repo.CountByUser(ctx, "KH_1")
	if count != 1 {
		t.Fatalf("expected one line, got %d", count)
	}
}

func TestAddToCartDifferentAdditiveSetCreatesNewLine(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    1,
		AdditiveIDs: []string{"Add_100001"},
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	if _, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		Quantity: 1,
	}); err != nil {
		t.Fatalf("second add: %v", err)
	}

	count, _ := repo.CountByUser(ctx, "KH_1")
	if count != 2 {
		t.Fatalf("expected two lines for distinct additive sets, got %d", count)
	}
}

func TestIncrementRecomputesFromFrozenUnitPrice(t *testing.T) {
	service, _, items := newTestService()
	ctx := context.Background()

	line, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// A later catalog price change must not leak into the existing line.
	items.items["FOOD_100001"].Price = 99.0

	updated, err := service.IncrementQuantity(ctx, "KH_1", line.ID, 2)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}

	if updated.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", updated.Quantity)
	}
	if updated.TotalPrice != 30.0 {
		t.Fatalf("expected total 30.0 from frozen unit price, got %.2f", updated.TotalPrice)
	}
}

func TestIncrementRejectsOverCeiling(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	line, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		Quantity: 99,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := service.IncrementQuantity(ctx, "KH_1", line.ID, 2); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest over ceiling, got %v", err)
	}
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	line, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	_, removed, err := service.DecrementQuantity(ctx, "KH_1", line.ID, 3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !removed {
		t.Fatal("expected line removal")
	}

	if got, _ := repo.Get(ctx, line.ID); got != nil {
		t.Fatal("expected line to be gone")
	}
}

func TestDecrementShortfallRejected(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	line, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	_, _, err = service.DecrementQuantity(ctx, "KH_1", line.ID, 4)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest shortfall, got %v", err)
	}

	// Quantity must be untouched after the rejection.
	got, _ := repo.Get(ctx, line.ID)
	if got == nil || got.Quantity != 3 {
		t.Fatalf("expected quantity to stay 3, got %+v", got)
	}
}

func TestTotalInvariantAcrossMutations(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	line, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:      "FOOD_100001",
		Quantity:    2,
		AdditiveIDs: []string{"Add_100001", "Add_100002"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := service.IncrementQuantity(ctx, "KH_1", line.ID, 5); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if _, _, err := service.DecrementQuantity(ctx, "KH_1", line.ID, 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	got, _ := repo.Get(ctx, line.ID)
	if got == nil {
		t.Fatal("line missing")
	}
	want := got.UnitPrice * float64(got.Quantity)
	if got.TotalPrice != want {
		t.Fatalf("invariant broken: total %.2f, unit*qty %.2f", got.TotalPrice, want)
	}
}

func TestMutationsForbiddenForOtherUser(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	line, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := service.IncrementQuantity(ctx, "KH_2", line.ID, 1); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden on increment, got %v", err)
	}
	if _, _, err := service.DecrementQuantity(ctx, "KH_2", line.ID, 1); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden on decrement, got %v", err)
	}
	if err := service.RemoveLine(ctx, "KH_2", line.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden on remove, got %v", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := service.AddToCart(ctx, "KH_1", AddRequest{
		FoodID:   "FOOD_100001",
		Quantity: 2,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := service.Clear(ctx, "KH_1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	// Clearing an already-empty cart must succeed.
	if err := service.Clear(ctx, "KH_1"); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	count, _ := repo.CountByUser(ctx, "KH_1")
	if count != 0 {
		t.Fatalf("expected empty cart, got %d lines", count)
	}
}
