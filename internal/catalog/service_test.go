package catalog

import (
	"context"
	"strings"
	"testing"

	"quanan/internal/apperr"
	"quanan/internal/attribute"
	"quanan/internal/category"
	"quanan/internal/restaurant"
)

func newTestService(t *testing.T) (*Service, *restaurant.InMemoryRepository, *category.InMemoryRepository, *attribute.InMemoryRepository) {
	t.Helper()

	restaurants := restaurant.NewInMemoryRepository()
	categories := category.NewInMemoryRepository()
	attributes := attribute.NewInMemoryRepository()
	items := NewInMemoryRepository()

	service := NewService(
		items,
		attribute.NewNormalizer(attributes),
		restaurants,
		categories,
		nil,
	)
	return service, restaurants, categories, attributes
}

func seedParents(t *testing.T, restaurants *restaurant.InMemoryRepository, categories *category.InMemoryRepository, kind category.Kind) (string, string) {
	t.Helper()
	ctx := context.Background()

	res := &restaurant.Restaurant{ID: "RES_100001", Title: "Pho 24", Code: "PHO24", IsAvailable: true}
	if err := restaurants.Create(ctx, res); err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}

	cat := &category.Category{ID: "CAT_100001", Title: "Noodles", Value: "noodles", Kind: kind}
	if err := categories.Create(ctx, cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return res.ID, cat.ID
}

func TestCreateItemResolvesAttributes(t *testing.T) {
	service, restaurants, categories, attributes := newTestService(t)
	resID, catID := seedParents(t, restaurants, categories, category.KindFood)

	item, err := service.CreateItem(context.Background(), KindFood, ItemSpec{
		Title:        "Pho Bo",
		Price:        8.5,
		CategoryID:   catID,
		RestaurantID: resID,
		Code:         "PHO24",
		IsAvailable:  true,
		Tags:         []string{"beef", "soup"},
		Types:        []string{"noodle"},
		Additives: []attribute.AdditiveInput{
			{Title: "extra beef", Price: 2.0},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(item.ID, "FOOD_") {
		t.Fatalf("expected FOOD_ id, got %q", item.ID)
	}
	if len(item.Tags) != 2 || len(item.Types) != 1 || len(item.Additives) != 1 {
		t.Fatalf("unexpected attribute counts: %d tags, %d types, %d additives",
			len(item.Tags), len(item.Types), len(item.Additives))
	}
	if attributes.AttributeCount() != 3 {
		t.Fatalf("expected 3 attribute rows, got %d", attributes.AttributeCount())
	}
}

func TestCreateItemMissingRestaurant(t *testing.T) {
	service, restaurants, categories, _ := newTestService(t)
	_, catID := seedParents(t, restaurants, categories, category.KindFood)

	_, err := service.CreateItem(context.Background(), KindFood, ItemSpec{
		Title:        "Pho Bo",
		Price:        8.5,
		CategoryID:   catID,
		RestaurantID: "RES_999999",
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestCreateItemCategoryKindMismatch(t *testing.T) {
	service, restaurants, categories, _ := newTestService(t)
	// A FOOD category must not accept a DRINK item.
	resID, catID := seedParents(t, restaurants, categories, category.KindFood)

	_, err := service.CreateItem(context.Background(), KindDrink, ItemSpec{
		Title:        "Iced Tea",
		Price:        2.0,
		CategoryID:   catID,
		RestaurantID: resID,
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	// The message must name the offending category so the client can fix it.
	if msg := apperr.Message(err); !strings.Contains(msg, "Noodles") {
		t.Fatalf("expected message to name category title, got %q", msg)
	}
}

func TestUpdateItemReplacesAttributeLinks(t *testing.T) {
	service, restaurants, categories, _ := newTestService(t)
	resID, catID := seedParents(t, restaurants, categories, category.KindFood)
	ctx := context.Background()

	item, err := service.CreateItem(ctx, KindFood, ItemSpec{
		Title:        "Pho Bo",
		Price:        8.5,
		CategoryID:   catID,
		RestaurantID: resID,
		IsAvailable:  true,
		Tags:         []string{"beef", "soup"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.UpdateItem(ctx, item.ID, ItemSpec{
		Title:        "Pho Bo Dac Biet",
		Price:        10.0,
		CategoryID:   catID,
		RestaurantID: resID,
		IsAvailable:  true,
		Tags:         []string{"special"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// Full replace: old tags are unlinked, not merged.
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "special" {
		t.Fatalf("expected single tag 'special', got %+v", updated.Tags)
	}
	if updated.Price != 10.0 {
		t.Fatalf("expected price 10.0, got %.2f", updated.Price)
	}
}

func TestUpdateItemUnknownID(t *testing.T) {
	service, restaurants, categories, _ := newTestService(t)
	resID, catID := seedParents(t, restaurants, categories, category.KindFood)

	_, err := service.UpdateItem(context.Background(), "FOOD_999999", ItemSpec{
		Title:        "Ghost",
		Price:        1.0,
		CategoryID:   catID,
		RestaurantID: resID,
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetItemOfKindRejectsWrongKind(t *testing.T) {
	service, restaurants, categories, _ := newTestService(t)
	resID, catID := seedParents(t, restaurants, categories, category.KindFood)
	ctx := context.Background()

	item, err := service.CreateItem(ctx, KindFood, ItemSpec{
		Title:        "Pho Bo",
		Price:        8.5,
		CategoryID:   catID,
		RestaurantID: resID,
		IsAvailable:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.GetItemOfKind(ctx, KindDrink, item.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for wrong kind, got %v", err)
	}
}
