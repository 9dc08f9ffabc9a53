package order

import (
	"context"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByGatewayOrderID finds an order by the gateway's order ID
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)

	// FindByUser finds all orders for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// CreateIfAbsent inserts the order unless one with the same gateway
	// order ID already exists; in that case the existing order is returned.
	CreateIfAbsent(ctx context.Context, o *Order) (*Order, error)

	// Save updates an existing order
	Save(ctx context.Context, o *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
