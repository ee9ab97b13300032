package promo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"quanan/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateRequest struct {
	Code           string     `json:"code"`
	DiscountAmount float64    `json:"discount_amount"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

func (s *Service) CreatePromo(ctx context.Context, req CreateRequest) (*Promo, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, apperr.BadRequest("promo code is required")
	}
	if req.DiscountAmount <= 0 {
		return nil, apperr.BadRequest("discount amount must be positive")
	}

	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("promo code %s already exists", code)
	}

	promo := &Promo{
		ID:             uuid.NewString(),
		Code:           code,
		DiscountAmount: req.DiscountAmount,
		Status:         StatusActive,
		ExpiresAt:      req.ExpiresAt,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, promo); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("promo code %s already exists", code)
		}
		return nil, apperr.Internal(err)
	}
	return promo, nil
}

// ResolveActive finds a usable promo by code. Unknown, disabled or expired
// codes are all reported as not found so callers cannot probe code status.
func (s *Service) ResolveActive(ctx context.Context, code string) (*Promo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperr.BadRequest("promo code is required")
	}

	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if promo == nil || !promo.Usable(time.Now()) {
		return nil, apperr.NotFound("promo code %s not found", code)
	}
	return promo, nil
}

func (s *Service) ListPromos(ctx context.Context) ([]Promo, error) {
	promos, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if promos == nil {
		promos = []Promo{}
	}
	return promos, nil
}

func (s *Service) DisablePromo(ctx context.Context, id string) error {
	if err := s.repo.SetStatus(ctx, id, StatusDisabled); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
