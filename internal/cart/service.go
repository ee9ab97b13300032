package cart

import (
	"context"

	"quanan/internal/apperr"
	"quanan/internal/attribute"
	"quanan/internal/catalog"
	"quanan/internal/identifier"
)

// MaxQuantity caps a single cart line.
const MaxQuantity = 100

// ItemSource resolves a catalog item of a specific kind.
type ItemSource interface {
	GetItemOfKind(ctx context.Context, kind catalog.ItemKind, id string) (*catalog.Item, error)
}

// AddRequest references exactly one of a food or a drink.
type AddRequest struct {
	FoodID      string   `json:"food_id"`
	DrinkID     string   `json:"drink_id"`
	Quantity    int      `json:"quantity"`
	AdditiveIDs []string `json:"additive_ids"`
}

type Service struct {
	repo  Repository
	items ItemSource
}

func NewService(repo Repository, items ItemSource) *Service {
	return &Service{repo: repo, items: items}
}

// --------------------------------------------------
// Add to cart (merge on identical identity)
// --------------------------------------------------
func (s *Service) AddToCart(ctx context.Context, userID string, req AddRequest) (*Line, error) {
	if (req.FoodID == "") == (req.DrinkID == "") {
		return nil, apperr.BadRequest("exactly one of food_id or drink_id must be set")
	}
	if req.Quantity <= 0 {
		return nil, apperr.BadRequest("quantity must be positive")
	}

	kind, itemID := catalog.KindFood, req.FoodID
	if req.DrinkID != "" {
		kind, itemID = catalog.KindDrink, req.DrinkID
	}

	item, err := s.items.GetItemOfKind(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}

	// A repeated additive id is the same set member, priced once.
	selected := make([]attribute.Additive, 0, len(req.AdditiveIDs))
	seen := make(map[string]bool, len(req.AdditiveIDs))
	for _, additiveID := range req.AdditiveIDs {
		if seen[additiveID] {
			continue
		}
		seen[additiveID] = true
		if !item.HasAdditive(additiveID) {
			return nil, apperr.NotFound("additive %s not found on item %s", additiveID, itemID)
		}
		for _, a := range item.Additives {
			if a.ID == additiveID {
				selected = append(selected, a)
				break
			}
		}
	}

	unitPrice := item.Price
	for _, a := range selected {
		unitPrice += a.Price
	}

	key := AdditiveKey(req.AdditiveIDs)

	existing, err := s.repo.FindByIdentity(ctx, userID, itemID, key)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if existing != nil {
		quantity := existing.Quantity + req.Quantity
		if quantity > MaxQuantity {
			return nil, apperr.BadRequest("quantity %d exceeds the limit of %d", quantity, MaxQuantity)
		}
		// Totals are recomputed from the line's frozen unit price, never
		// re-read from the catalog.
		total := existing.UnitPrice * float64(quantity)
		if err := s.repo.UpdateQuantity(ctx, existing.ID, quantity, total); err != nil {
			return nil, apperr.Internal(err)
		}
		existing.Quantity = quantity
		existing.TotalPrice = total
		return existing, nil
	}

	if req.Quantity > MaxQuantity {
		return nil, apperr.BadRequest("quantity %d exceeds the limit of %d", req.Quantity, MaxQuantity)
	}

	id, err := identifier.Allocate(
		ctx,
		identifier.PrefixCart,
		identifier.ProberFunc(s.repo.IDExists),
	)
	if err != nil {
		return nil, err
	}

	line := &Line{
		ID:         id,
		UserID:     userID,
		ItemID:     itemID,
		Kind:       kind,
		Quantity:   req.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * float64(req.Quantity),
		Additives:  selected,
	}

	if err := s.repo.Create(ctx, line); err != nil {
		if apperr.IsUniqueViolation(err) {
			// A racing add created the same logical line first; fold this
			// contribution into it.
			winner, findErr := s.repo.FindByIdentity(ctx, userID, itemID, key)
			if findErr == nil && winner != nil {
				quantity := winner.Quantity + req.Quantity
				total := winner.UnitPrice * float64(quantity)
				if err := s.repo.UpdateQuantity(ctx, winner.ID, quantity, total); err != nil {
					return nil, apperr.Internal(err)
				}
				winner.Quantity = quantity
				winner.TotalPrice = total
				return winner, nil
			}
		}
		return nil, apperr.Internal(err)
	}

	return line, nil
}

// --------------------------------------------------
// Quantity changes
// --------------------------------------------------
func (s *Service) IncrementQuantity(
	ctx context.Context,
	userID, lineID string,
	delta int,
) (*Line, error) {

	if delta <= 0 {
		return nil, apperr.BadRequest("delta must be positive")
	}

	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}

	quantity := line.Quantity + delta
	if quantity > MaxQuantity {
		return nil, apperr.BadRequest("quantity %d exceeds the limit of %d", quantity, MaxQuantity)
	}

	total := line.UnitPrice * float64(quantity)
	if err := s.repo.UpdateQuantity(ctx, line.ID, quantity, total); err != nil {
		return nil, apperr.Internal(err)
	}

	line.Quantity = quantity
	line.TotalPrice = total
	return line, nil
}

// DecrementQuantity lowers a line's quantity. Removing everything deletes
// the line; removed reports that. Removing more than is there is rejected
// with the shortfall.
func (s *Service) DecrementQuantity(
	ctx context.Context,
	userID, lineID string,
	delta int,
) (line *Line, removed bool, err error) {

	if delta <= 0 {
		return nil, false, apperr.BadRequest("delta must be positive")
	}

	line, err = s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return nil, false, err
	}

	if delta > line.Quantity {
		return nil, false, apperr.BadRequest(
			"cannot remove %d from line %s, only %d in cart",
			delta, lineID, line.Quantity,
		)
	}

	quantity := line.Quantity - delta
	if quantity <= 0 {
		if err := s.repo.Delete(ctx, line.ID); err != nil {
			return nil, false, apperr.Internal(err)
		}
		return nil, true, nil
	}

	total := line.UnitPrice * float64(quantity)
	if err := s.repo.UpdateQuantity(ctx, line.ID, quantity, total); err != nil {
		return nil, false, apperr.Internal(err)
	}

	line.Quantity = quantity
	line.TotalPrice = total
	return line, false, nil
}

// RemoveLine deletes a line outright regardless of quantity.
func (s *Service) RemoveLine(ctx context.Context, userID, lineID string) error {
	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, line.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Clear empties a user's cart. Clearing an empty cart is a no-op, not an
// error.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) GetCart(ctx context.Context, userID string) ([]Line, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

func (s *Service) ownedLine(ctx context.Context, userID, lineID string) (*Line, error) {
	line, err := s.repo.Get(ctx, lineID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if line == nil {
		return nil, apperr.NotFound("cart line %s not found", lineID)
	}
	if line.UserID != userID {
		return nil, apperr.Forbidden("cart line %s does not belong to you", lineID)
	}
	return line, nil
}
