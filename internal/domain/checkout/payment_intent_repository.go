package checkout

import (
	"context"

	"github.com/google/uuid"
)

// PaymentIntentRepository defines the interface for payment intent persistence
type PaymentIntentRepository interface {
	// FindByID finds an intent by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentIntent, error)

	// FindByGatewayOrderID finds an intent by the gateway's order ID
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*PaymentIntent, error)

	// Save creates or updates an intent
	Save(ctx context.Context, intent *PaymentIntent) error
}
