package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"quanan/internal/apperr"
	"quanan/internal/attribute"
	"quanan/internal/catalog"
	"quanan/internal/promo"
)

// CustomerDirectory answers whether a user id exists.
type CustomerDirectory interface {
	IDExists(ctx context.Context, id string) (bool, error)
}

// RestaurantDirectory answers whether a restaurant id exists.
type RestaurantDirectory interface {
	IDExists(ctx context.Context, id string) (bool, error)
}

// ItemSource resolves a catalog item of a specific kind.
type ItemSource interface {
	GetItemOfKind(ctx context.Context, kind catalog.ItemKind, id string) (*catalog.Item, error)
}

// PromoSource resolves an active promo code. nil disables promo codes.
type PromoSource interface {
	ResolveActive(ctx context.Context, code string) (*promo.Promo, error)
}

type LineRequest struct {
	FoodID       string   `json:"food_id"`
	DrinkID      string   `json:"drink_id"`
	Quantity     int      `json:"quantity"`
	AdditiveIDs  []string `json:"additive_ids"`
	Instructions string   `json:"instructions"`
}

type PlaceRequest struct {
	RestaurantID    string        `json:"restaurant_id"`
	Items           []LineRequest `json:"items"`
	DiscountAmount  *float64      `json:"discount_amount"`
	PromoCode       string        `json:"promo_code"`
	DeliveryAddress string        `json:"delivery_address"`
	PaymentMethod   string        `json:"payment_method"`
}

type Service struct {
	repo        Repository
	customers   CustomerDirectory
	restaurants RestaurantDirectory
	items       ItemSource
	promos      PromoSource
}

func NewService(
	repo Repository,
	customers CustomerDirectory,
	restaurants RestaurantDirectory,
	items ItemSource,
	promos PromoSource,
) *Service {
	return &Service{
		repo:        repo,
		customers:   customers,
		restaurants: restaurants,
		items:       items,
		promos:      promos,
	}
}

// --------------------------------------------------
// Place order
// --------------------------------------------------
func (s *Service) PlaceOrder(ctx context.Context, customerID string, req PlaceRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.BadRequest("order must contain at least one item")
	}

	exists, err := s.customers.IDExists(ctx, customerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("customer %s not found", customerID)
	}

	exists, err = s.restaurants.IDExists(ctx, req.RestaurantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("restaurant %s not found", req.RestaurantID)
	}

	lines := make([]OrderLine, 0, len(req.Items))
	total := 0.0
	for _, lr := range req.Items {
		line, err := s.buildLine(ctx, lr)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
		total += line.TotalPrice
	}

	discount, promoCode, err := s.resolveDiscount(ctx, req, total)
	if err != nil {
		return nil, err
	}

	order := &Order{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		RestaurantID:    req.RestaurantID,
		Status:          StatusPending,
		Total:           total,
		DiscountAmount:  discount,
		GrandTotal:      total - discount,
		PromoCode:       promoCode,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           lines,
		CreatedAt:       time.Now(),
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, apperr.Internal(err)
	}
	return order, nil
}

// buildLine resolves one requested line against the catalog and snapshots
// its price. Unit price is the item price plus the selected additives; the
// line total multiplies the whole unit price by the quantity.
func (s *Service) buildLine(ctx context.Context, req LineRequest) (*OrderLine, error) {
	if (req.FoodID == "") == (req.DrinkID == "") {
		return nil, apperr.BadRequest("each item must reference exactly one of food_id or drink_id")
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
	unitPrice := item.Price
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
				unitPrice += a.Price
				break
			}
		}
	}

	return &OrderLine{
		ID:           uuid.NewString(),
		ItemID:       itemID,
		Kind:         kind,
		Quantity:     req.Quantity,
		UnitPrice:    unitPrice,
		TotalPrice:   unitPrice * float64(req.Quantity),
		Instructions: strings.TrimSpace(req.Instructions),
		Additives:    selected,
	}, nil
}

// resolveDiscount picks the explicit amount when given, falls back to the
// promo code, and clamps the result into [0, total].
func (s *Service) resolveDiscount(
	ctx context.Context,
	req PlaceRequest,
	total float64,
) (float64, string, error) {

	discount := 0.0
	promoCode := ""

	switch {
	case req.DiscountAmount != nil:
		discount = *req.DiscountAmount
	case req.PromoCode != "":
		if s.promos == nil {
			return 0, "", apperr.BadRequest("promo codes are not supported")
		}
		p, err := s.promos.ResolveActive(ctx, req.PromoCode)
		if err != nil {
			return 0, "", err
		}
		discount = p.DiscountAmount
		promoCode = p.Code
	}

	if discount < 0 {
		discount = 0
	}
	if discount > total {
		discount = total
	}
	return discount, promoCode, nil
}

// --------------------------------------------------
// Reads and status
// --------------------------------------------------
func (s *Service) GetOrder(ctx context.Context, callerID, orderID string) (*Order, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order %s not found", orderID)
	}
	if order.CustomerID != callerID {
		return nil, apperr.Forbidden("order %s does not belong to you", orderID)
	}
	return order, nil
}

func (s *Service) ListByCustomer(
	ctx context.Context,
	customerID string,
	pageIndex, pageSize int,
) ([]Order, int, error) {

	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	orders, total, err := s.repo.ListByCustomer(ctx, customerID, pageSize, (pageIndex-1)*pageSize)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, total, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, apperr.BadRequest("unknown order status %s", status)
	}

	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order %s not found", orderID)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, apperr.Internal(err)
	}
	order.Status = status
	return order, nil
}
