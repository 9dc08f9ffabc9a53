package cart

import (
	"context"

	"github.com/craftshop/backend/internal/domain/cart"
	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartService handles cart business operations
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem adds a product to the user's cart. Adding the same (product, size)
// again merges quantities in a single upsert, so concurrent adds never
// produce duplicate lines.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(req.Quantity) {
		return nil, shared.ErrInsufficientStock
	}

	item, err := cart.NewCartItem(
		userID,
		product.ID,
		req.Size,
		req.Quantity,
		product.Name,
		product.EffectivePrice(),
		"",
	)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// GetCart returns the user's cart with line and cart totals
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(items)
	return &response, nil
}

// UpdateQuantity increases or decreases a cart line. Decreasing to zero
// removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, req UpdateQuantityRequest) (*CartResponse, error) {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}

	switch req.Action {
	case "increase":
		if err := item.Increase(req.Step()); err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	case "decrease":
		emptied, err := item.Decrease(req.Step())
		if err != nil {
			return nil, err
		}
		if emptied {
			if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
				return nil, err
			}
		} else {
			if err := s.cartRepo.Save(ctx, item); err != nil {
				return nil, err
			}
		}
	default:
		return nil, shared.NewDomainError("INVALID_ACTION", "Action must be increase or decrease")
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes one cart line owned by the user
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}

	if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// Clear removes every line in the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(ctx, userID)
}
