package order

import (
	"context"

	"github.com/craftshop/backend/internal/domain/identity"
	"github.com/craftshop/backend/internal/domain/order"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderService handles order queries and fulfilment
type OrderService struct {
	orderRepo order.OrderRepository
	userRepo  identity.UserRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, userRepo identity.UserRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// MyOrders returns the caller's orders, newest first, with the buyer's own
// name, email and shipping address on each order
func (s *OrderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	buyer, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i], buyer)
	}
	return responses, nil
}

// GetByID returns one order. Buyers only see their own orders; admins see any.
func (s *OrderService) GetByID(ctx context.Context, userID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(o, nil)
	return &response, nil
}

// ListAll returns every order matching the filter with buyer details joined
// in, for the admin dashboard
func (s *OrderService) ListAll(ctx context.Context, req ListOrdersFilter) (*OrderListResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_USER_ID", "User ID must be a valid UUID")
		}
		filter.Filters["user_id"] = userID
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	buyers, err := s.loadBuyers(ctx, orders)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i], buyers[orders[i].UserID])
	}

	return &OrderListResponse{
		Orders:   responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// MarkDelivered transitions a paid order to delivered
func (s *OrderService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.MarkDelivered(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o, nil)
	return &response, nil
}

// loadBuyers fetches the distinct buyers of the given orders in one query
func (s *OrderService) loadBuyers(ctx context.Context, orders []order.Order) (map[uuid.UUID]*identity.User, error) {
	seen := make(map[uuid.UUID]struct{}, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for i := range orders {
		if _, ok := seen[orders[i].UserID]; ok {
			continue
		}
		seen[orders[i].UserID] = struct{}{}
		ids = append(ids, orders[i].UserID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*identity.User{}, nil
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*identity.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}
