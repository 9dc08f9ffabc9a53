package checkout

import (
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePaymentIntent = "PaymentIntent"

// Event type constants
const (
	EventTypePaymentIntentCreated = "PaymentIntentCreated"
	EventTypePaymentIntentPaid    = "PaymentIntentPaid"
)

// PaymentIntentCreatedEvent is published when a payment order is opened
type PaymentIntentCreatedEvent struct {
	shared.BaseDomainEvent
	IntentID       uuid.UUID       `json:"intent_id"`
	GatewayOrderID string          `json:"gateway_order_id"`
	UserID         uuid.UUID       `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
}

// NewPaymentIntentCreatedEvent creates a new PaymentIntentCreatedEvent
func NewPaymentIntentCreatedEvent(intent *PaymentIntent) *PaymentIntentCreatedEvent {
	return &PaymentIntentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentIntentCreated, AggregateTypePaymentIntent, intent.ID),
		IntentID:        intent.ID,
		GatewayOrderID:  intent.GatewayOrderID,
		UserID:          intent.UserID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	}
}

// PaymentIntentPaidEvent is published when an intent settles
type PaymentIntentPaidEvent struct {
	shared.BaseDomainEvent
	IntentID         uuid.UUID `json:"intent_id"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	UserID           uuid.UUID `json:"user_id"`
}

// NewPaymentIntentPaidEvent creates a new PaymentIntentPaidEvent
func NewPaymentIntentPaidEvent(intent *PaymentIntent) *PaymentIntentPaidEvent {
	return &PaymentIntentPaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePaymentIntentPaid, AggregateTypePaymentIntent, intent.ID),
		IntentID:         intent.ID,
		GatewayOrderID:   intent.GatewayOrderID,
		GatewayPaymentID: intent.GatewayPaymentID,
		UserID:           intent.UserID,
	}
}
