package attribute

import (
	"context"
	"testing"
)

func TestResolveNamesCreatesOnce(t *testing.T) {
	repo := NewInMemoryRepository()
	normalizer := NewNormalizer(repo)
	ctx := context.Background()

	first, err := normalizer.ResolveNames(ctx, []string{"spicy"}, FoodTag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := normalizer.ResolveNames(ctx, []string{"spicy"}, FoodTag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first[0].ID != second[0].ID {
		t.Fatalf("expected stable id, got %s then %s", first[0].ID, second[0].ID)
	}
	if repo.AttributeCount() != 1 {
		t.Fatalf("expected exactly one row, got %d", repo.AttributeCount())
	}
}

func TestResolveNamesSameNameDifferentKind(t *testing.T) {
	repo := NewInMemoryRepository()
	normalizer := NewNormalizer(repo)
	ctx := context.Background()

	asTag, err := normalizer.ResolveNames(ctx, []string{"cold"}, DrinkTag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	asType, err := normalizer.ResolveNames(ctx, []string{"cold"}, DrinkType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Uniqueness is per kind, so the same name yields two entities.
	if asTag[0].ID == asType[0].ID {
		t.Fatalf("expected distinct ids across kinds, both were %s", asTag[0].ID)
	}
	if repo.AttributeCount() != 2 {
		t.Fatalf("expected two rows, got %d", repo.AttributeCount())
	}
}

func TestResolveNamesPreservesCardinality(t *testing.T) {
	repo := NewInMemoryRepository()
	normalizer := NewNormalizer(repo)

	resolved, err := normalizer.ResolveNames(
		context.Background(),
		[]string{"spicy", "vegan", "spicy"},
		FoodTag,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved) != 3 {
		t.Fatalf("expected 3 entries back, got %d", len(resolved))
	}
	if resolved[0].ID != resolved[2].ID {
		t.Fatalf("duplicate names should collapse to one id, got %s and %s",
			resolved[0].ID, resolved[2].ID)
	}
	if repo.AttributeCount() != 2 {
		t.Fatalf("expected two rows for two distinct names, got %d", repo.AttributeCount())
	}
}

func TestResolveAdditivesStoredPriceWins(t *testing.T) {
	repo := NewInMemoryRepository()
	normalizer := NewNormalizer(repo)
	ctx := context.Background()

	first, err := normalizer.ResolveAdditives(ctx, []AdditiveInput{
		{Title: "extra cheese", Price: 2.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Resubmitting the same title with a different price must return the
	// original stored price.
	second, err := normalizer.ResolveAdditives(ctx, []AdditiveInput{
		{Title: "extra cheese", Price: 9.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second[0].ID != first[0].ID {
		t.Fatalf("expected same entity, got %s then %s", first[0].ID, second[0].ID)
	}
	if second[0].Price != 2.0 {
		t.Fatalf("expected stored price 2.0, got %.2f", second[0].Price)
	}
	if repo.AdditiveCount() != 1 {
		t.Fatalf("expected one additive row, got %d", repo.AdditiveCount())
	}
}

func TestResolveAdditivesCreatesWithAllocatedID(t *testing.T) {
	repo := NewInMemoryRepository()
	normalizer := NewNormalizer(repo)

	resolved, err := normalizer.ResolveAdditives(context.Background(), []AdditiveInput{
		{Title: "peanut sauce", Price: 1.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved) != 1 {
		t.Fatalf("expected one additive, got %d", len(resolved))
	}
	if resolved[0].ID == "" {
		t.Fatal("expected allocated id")
	}
	if resolved[0].Price != 1.5 {
		t.Fatalf("expected price 1.5, got %.2f", resolved[0].Price)
	}
}
