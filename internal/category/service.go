package category

import (
	"context"

	"quanan/internal/apperr"
	"quanan/internal/identifier"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(
	ctx context.Context,
	title, value string,
	kind Kind,
	imageURL string,
) (*Category, error) {

	if title == "" || value == "" {
		return nil, apperr.BadRequest("title and value are required")
	}
	if kind != KindFood && kind != KindDrink {
		return nil, apperr.BadRequest("kind must be FOOD or DRINK")
	}

	id, err := identifier.Allocate(
		ctx,
		identifier.PrefixCategory,
		identifier.ProberFunc(s.repo.IDExists),
	)
	if err != nil {
		return nil, err
	}

	category := &Category{
		ID:       id,
		Title:    title,
		Value:    value,
		Kind:     kind,
		ImageURL: imageURL,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("category value %s is already taken", value)
		}
		return nil, apperr.Internal(err)
	}

	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if category == nil {
		return nil, apperr.NotFound("category %s not found", id)
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context, kind Kind) ([]Category, error) {
	if kind != KindFood && kind != KindDrink {
		return nil, apperr.BadRequest("kind must be FOOD or DRINK")
	}
	categories, err := s.repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}
