package restaurant

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"quanan/internal/apperr"
	"quanan/internal/identifier"
)

// Storage uploads a file and returns its public URL.
type Storage interface {
	UploadFile(ctx context.Context, key string, file *multipart.FileHeader) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

func (s *Service) CreateRestaurant(
	ctx context.Context,
	title, code, ownerID string,
) (*Restaurant, error) {

	if title == "" || code == "" {
		return nil, apperr.BadRequest("title and code are required")
	}

	id, err := identifier.Allocate(
		ctx,
		identifier.PrefixRestaurant,
		identifier.ProberFunc(s.repo.IDExists),
	)
	if err != nil {
		return nil, err
	}

	restaurant := &Restaurant{
		ID:          id,
		Title:       title,
		Code:        code,
		OwnerID:     ownerID,
		IsAvailable: true,
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("restaurant code %s is already taken", code)
		}
		return nil, apperr.Internal(err)
	}

	return restaurant, nil
}

func (s *Service) GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	restaurant, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if restaurant == nil {
		return nil, apperr.NotFound("restaurant %s not found", id)
	}
	return restaurant, nil
}

func (s *Service) ListRestaurants(
	ctx context.Context,
	pageIndex, pageSize int,
) ([]Restaurant, int, error) {

	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	restaurants, total, err := s.repo.List(ctx, (pageIndex-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return restaurants, total, nil
}

// IDExists reports whether a restaurant id is taken.
func (s *Service) IDExists(ctx context.Context, id string) (bool, error) {
	return s.repo.IDExists(ctx, id)
}

// ApplyRating writes a recomputed rating aggregate onto a restaurant.
func (s *Service) ApplyRating(ctx context.Context, id string, rating float64, ratingCount int) error {
	if err := s.repo.UpdateRating(ctx, id, rating, ratingCount); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// UploadLogo stores the logo object and records its public URL. Only the
// owner may replace a restaurant's logo.
func (s *Service) UploadLogo(
	ctx context.Context,
	restaurantID, callerID string,
	file *multipart.FileHeader,
) (string, error) {

	restaurant, err := s.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return "", err
	}
	if restaurant.OwnerID != callerID {
		return "", apperr.Forbidden("restaurant %s does not belong to you", restaurantID)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", apperr.BadRequest("invalid file")
	}

	key := fmt.Sprintf("logos/%s/%s%s", restaurantID, uuid.New().String(), ext)

	url, err := s.storage.UploadFile(ctx, key, file)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := s.repo.SetLogoURL(ctx, restaurantID, url); err != nil {
		return "", apperr.Internal(err)
	}

	return url, nil
}
