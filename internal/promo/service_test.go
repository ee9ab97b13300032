package promo

import (
	"context"
	"testing"
	"time"

	"quanan/internal/apperr"
)

func TestCreatePromoNormalizesCode(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ctx := context.Background()

	created, err := service.CreatePromo(ctx, CreateRequest{
		Code:           "  welcome5 ",
		DiscountAmount: 5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Code != "WELCOME5" {
		t.Fatalf("expected normalized code WELCOME5, got %q", created.Code)
	}

	_, err = service.CreatePromo(ctx, CreateRequest{Code: "welcome5", DiscountAmount: 3})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict for duplicate code, got %v", err)
	}
}

func TestResolveActiveHidesUnusableCodes(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	ctx := context.Background()

	if _, err := service.ResolveActive(ctx, "NOPE"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown code, got %v", err)
	}

	expired := time.Now().Add(-time.Hour)
	if _, err := service.CreatePromo(ctx, CreateRequest{
		Code:           "OLD",
		DiscountAmount: 5,
		ExpiresAt:      &expired,
	}); err != nil {
		t.Fatalf("create expired: %v", err)
	}
	// Expired codes look exactly like unknown ones.
	if _, err := service.ResolveActive(ctx, "OLD"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for expired code, got %v", err)
	}

	created, err := service.CreatePromo(ctx, CreateRequest{Code: "LIVE", DiscountAmount: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.ResolveActive(ctx, "live"); err != nil {
		t.Fatalf("expected active code to resolve, got %v", err)
	}

	if err := service.DisablePromo(ctx, created.ID); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, err := service.ResolveActive(ctx, "LIVE"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for disabled code, got %v", err)
	}
}
