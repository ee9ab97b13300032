package order

import (
	"context"
	"testing"

	"quanan/internal/apperr"
	"quanan/internal/attribute"
	"quanan/internal/catalog"
	"quanan/internal/promo"
)

type fakeDirectory map[string]bool

func (d fakeDirectory) IDExists(ctx context.Context, id string) (bool, error) {
	return d[id], nil
}

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

func newTestService(t *testing.T) (*Service, *promo.Service) {
	t.Helper()

	items := &fakeItems{items: map[string]*catalog.Item{
		"FOOD_100001": {
			ID:    "FOOD_100001",
			Kind:  catalog.KindFood,
			Title: "Com Tam",
			Price: 10.0,
			Additives: []attribute.Additive{
				{ID: "Add_100001", Title: "fried egg", Price: 2.0},
			},
		},
		"DRINK_100001": {
			ID:    "DRINK_100001",
			Kind:  catalog.KindDrink,
			Title: "Sugarcane Juice",
			Price: 5.0,
		},
	}}
	promos := promo.NewService(promo.NewInMemoryRepository())

	service := NewService(
		NewInMemoryRepository(),
		fakeDirectory{"KH_100001": true},
		fakeDirectory{"RES_100001": true},
		items,
		promos,
	)
	return service, promos
}

func twoLineRequest() PlaceRequest {
	return PlaceRequest{
		RestaurantID: "RES_100001",
		Items: []LineRequest{
			{FoodID: "FOOD_100001", Quantity: 2, AdditiveIDs: []string{"Add_100001"}},
			{DrinkID: "DRINK_100001", Quantity: 1},
		},
		DeliveryAddress: "12 Nguyen Hue",
		PaymentMethod:   "COD",
	}
}

func TestPlaceOrderTotals(t *testing.T) {
	service, _ := newTestService(t)

	discount := 5.0
	req := twoLineRequest()
	req.DiscountAmount = &discount

	placed, err := service.PlaceOrder(context.Background(), "KH_100001", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (10 + 2) * 2 + 5 * 1
	if placed.Total != 29.0 {
		t.Fatalf("expected total 29.0, got %.2f", placed.Total)
	}
	if placed.GrandTotal != 24.0 {
		t.Fatalf("expected grand total 24.0, got %.2f", placed.GrandTotal)
	}
	if placed.Status != StatusPending {
		t.Fatalf("expected status %s, got %s", StatusPending, placed.Status)
	}

	if len(placed.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(placed.Items))
	}
	food := placed.Items[0]
	if food.UnitPrice != 12.0 || food.TotalPrice != 24.0 {
		t.Fatalf("food line: expected unit 12.0 total 24.0, got %.2f / %.2f",
			food.UnitPrice, food.TotalPrice)
	}
}

func TestPlaceOrderRepeatedAdditiveIDPricedOnce(t *testing.T) {
	service, _ := newTestService(t)

	placed, err := service.PlaceOrder(context.Background(), "KH_100001", PlaceRequest{
		RestaurantID: "RES_100001",
		Items: []LineRequest{
			{FoodID: "FOOD_100001", Quantity: 2, AdditiveIDs: []string{"Add_100001", "Add_100001"}},
		},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	line := placed.Items[0]
	// (10 + 2) * 2, the duplicate id does not double the surcharge.
	if line.UnitPrice != 12.0 || line.TotalPrice != 24.0 {
		t.Fatalf("expected unit 12.0 total 24.0, got %.2f / %.2f", line.UnitPrice, line.TotalPrice)
	}
	if len(line.Additives) != 1 {
		t.Fatalf("expected one additive on the line, got %d", len(line.Additives))
	}
}

func TestPlaceOrderSnapshotsUnitPrice(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	placed, err := service.PlaceOrder(ctx, "KH_100001", twoLineRequest())
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// Catalog edits after checkout must not be visible in the stored order.
	service.items.(*fakeItems).items["FOOD_100001"].Price = 50.0

	got, err := service.GetOrder(ctx, "KH_100001", placed.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Items[0].UnitPrice != 12.0 {
		t.Fatalf("expected snapshotted unit price 12.0, got %.2f", got.Items[0].UnitPrice)
	}
	if got.Total != 29.0 {
		t.Fatalf("expected snapshotted total 29.0, got %.2f", got.Total)
	}
}

func TestPlaceOrderDiscountClamped(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	over := 1000.0
	req := twoLineRequest()
	req.DiscountAmount = &over

	placed, err := service.PlaceOrder(ctx, "KH_100001", req)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if placed.DiscountAmount != placed.Total {
		t.Fatalf("expected discount clamped to total %.2f, got %.2f",
			placed.Total, placed.DiscountAmount)
	}
	if placed.GrandTotal != 0 {
		t.Fatalf("expected grand total 0, got %.2f", placed.GrandTotal)
	}

	negative := -3.0
	req = twoLineRequest()
	req.DiscountAmount = &negative

	placed, err = service.PlaceOrder(ctx, "KH_100001", req)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if placed.DiscountAmount != 0 || placed.GrandTotal != placed.Total {
		t.Fatalf("expected negative discount clamped to 0, got %.2f", placed.DiscountAmount)
	}
}

func TestPlaceOrderWithPromoCode(t *testing.T) {
	service, promos := newTestService(t)
	ctx := context.Background()

	if _, err := promos.CreatePromo(ctx, promo.CreateRequest{
		Code:           "WELCOME5",
		DiscountAmount: 5.0,
	}); err != nil {
		t.Fatalf("create promo: %v", err)
	}

	req := twoLineRequest()
	req.PromoCode = "welcome5"

	placed, err := service.PlaceOrder(ctx, "KH_100001", req)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if placed.DiscountAmount != 5.0 || placed.GrandTotal != 24.0 {
		t.Fatalf("expected discount 5.0 grand total 24.0, got %.2f / %.2f",
			placed.DiscountAmount, placed.GrandTotal)
	}
	if placed.PromoCode != "WELCOME5" {
		t.Fatalf("expected promo code WELCOME5, got %s", placed.PromoCode)
	}

	req = twoLineRequest()
	req.PromoCode = "NOPE"
	if _, err := service.PlaceOrder(ctx, "KH_100001", req); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown promo, got %v", err)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	req := twoLineRequest()
	if _, err := service.PlaceOrder(ctx, "KH_999999", req); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown customer, got %v", err)
	}

	req = twoLineRequest()
	req.RestaurantID = "RES_999999"
	if _, err := service.PlaceOrder(ctx, "KH_100001", req); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown restaurant, got %v", err)
	}

	req = twoLineRequest()
	req.Items = nil
	if _, err := service.PlaceOrder(ctx, "KH_100001", req); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for empty order, got %v", err)
	}

	req = twoLineRequest()
	req.Items[0].DrinkID = "DRINK_100001"
	if _, err := service.PlaceOrder(ctx, "KH_100001", req); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for line with both refs, got %v", err)
	}

	req = twoLineRequest()
	req.Items[0].AdditiveIDs = []string{"Add_999999"}
	if _, err := service.PlaceOrder(ctx, "KH_100001", req); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for foreign additive, got %v", err)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	placed, err := service.PlaceOrder(ctx, "KH_100001", twoLineRequest())
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if _, err := service.GetOrder(ctx, "KH_200000", placed.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden for foreign caller, got %v", err)
	}
	if _, err := service.GetOrder(ctx, "KH_100001", "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown order, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	placed, err := service.PlaceOrder(ctx, "KH_100001", twoLineRequest())
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	updated, err := service.UpdateStatus(ctx, placed.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Fatalf("expected status %s, got %s", StatusConfirmed, updated.Status)
	}

	if _, err := service.UpdateStatus(ctx, placed.ID, "SHIPPED_TO_MARS"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for unknown status, got %v", err)
	}
	if _, err := service.UpdateStatus(ctx, "missing", StatusConfirmed); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown order, got %v", err)
	}
}
