package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quanan/internal/apperr"
	"quanan/internal/identifier"
)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a user with a role-prefixed allocator id and a bcrypt
// password hash.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = RoleCustomer
	}

	if name == "" || email == "" || req.Password == "" {
		return nil, apperr.BadRequest("name, email and password are required")
	}
	if !ValidRole(role) {
		return nil, apperr.BadRequest("unknown role %s", role)
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("email %s is already registered", email)
	}

	id, err := identifier.Allocate(
		ctx,
		identifier.UserPrefix(role),
		identifier.ProberFunc(s.repo.IDExists),
	)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Save(ctx, user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("email %s is already registered", email)
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Login verifies the credentials and issues a signed token carrying the
// user's role. Wrong email and wrong password report the same message.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	if user == nil {
		return nil, "", apperr.BadRequest("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.BadRequest("invalid email or password")
	}

	token, err := GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return user, token, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user %s not found", userID)
	}
	return user, nil
}

// IDExists reports whether a user id is taken.
func (s *Service) IDExists(ctx context.Context, id string) (bool, error) {
	return s.repo.IDExists(ctx, id)
}

// ShipperExists reports whether the id belongs to a shipper user.
func (s *Service) ShipperExists(ctx context.Context, id string) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == RoleShipper, nil
}

// ApplyShipperRating writes a recomputed rating aggregate onto a shipper.
func (s *Service) ApplyShipperRating(
	ctx context.Context,
	id string,
	rating float64,
	ratingCount int,
) error {
	if err := s.repo.UpdateRating(ctx, id, rating, ratingCount); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
