package identifier

import (
	"context"
	"strings"
	"testing"
)

func TestAllocateReturnsPrefixedID(t *testing.T) {
	probe := ProberFunc(func(ctx context.Context, id string) (bool, error) {
		return false, nil
	})

	id, err := Allocate(context.Background(), PrefixFood, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(id, "FOOD_") {
		t.Fatalf("expected FOOD_ prefix, got %s", id)
	}
	if len(id) != len("FOOD_")+6 {
		t.Fatalf("expected six digit suffix, got %s", id)
	}
}

func TestAllocateRetriesOnCollision(t *testing.T) {
	collisions := 0
	probe := ProberFunc(func(ctx context.Context, id string) (bool, error) {
		if collisions < 3 {
			collisions++
			return true, nil
		}
		return false, nil
	})

	id, err := Allocate(context.Background(), PrefixCart, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if collisions != 3 {
		t.Fatalf("expected 3 collisions before success, got %d", collisions)
	}
	if !strings.HasPrefix(id, "CART_") {
		t.Fatalf("expected CART_ prefix, got %s", id)
	}
}

func TestAllocateGivesUpWhenSpaceExhausted(t *testing.T) {
	attempts := 0
	probe := ProberFunc(func(ctx context.Context, id string) (bool, error) {
		attempts++
		return true, nil
	})

	_, err := Allocate(context.Background(), PrefixRating, probe)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if attempts != 50 {
		t.Fatalf("expected 50 attempts, got %d", attempts)
	}
}

func TestUserPrefixByRole(t *testing.T) {
	cases := map[string]string{
		"CUSTOMER":   "KH",
		"SHIPPER":    "SH",
		"RESTAURANT": "ST",
		"ADMIN":      "AD",
		"":           "US",
	}
	for role, want := range cases {
		if got := UserPrefix(role); got != want {
			t.Errorf("UserPrefix(%q) = %q, want %q", role, got, want)
		}
	}
}
