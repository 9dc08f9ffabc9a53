package checkout

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Payment gateway errors
var (
	ErrPaymentInvalidAmount   = errors.New("payment: invalid payment amount")
	ErrPaymentInvalidReceipt  = errors.New("payment: invalid receipt reference")
	ErrPaymentInvalidCurrency = errors.New("payment: invalid currency")

	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrInvalidSignature       = errors.New("payment: invalid callback signature")
)

// CreateOrderRequest represents a request to open a payment order in the gateway
type CreateOrderRequest struct {
	// AmountMinor is the amount in the currency's minor unit (paise for INR)
	AmountMinor int64
	// Currency is the ISO currency code
	Currency string
	// Receipt is our internal receipt reference shown in the gateway dashboard
	Receipt string
	// Notes carries optional key-value metadata attached to the gateway order
	Notes map[string]string
}

// Validate validates the create order request
func (r *CreateOrderRequest) Validate() error {
	if r.AmountMinor <= 0 {
		return ErrPaymentInvalidAmount
	}
	if r.Currency == "" {
		return ErrPaymentInvalidCurrency
	}
	if r.Receipt == "" {
		return ErrPaymentInvalidReceipt
	}
	return nil
}

// CreateOrderResponse represents the gateway's view of a freshly opened order
type CreateOrderResponse struct {
	// GatewayOrderID is the order ID assigned by the gateway
	GatewayOrderID string
	// AmountMinor echoes the amount in minor units
	AmountMinor int64
	// Currency echoes the currency
	Currency string
	// Status is the gateway-side status (usually "created")
	Status string
	// RawResponse is the original gateway response (JSON)
	RawResponse string
}

// PaymentGateway defines the port interface for the external payment gateway.
// The concrete HTTP adapter lives in the infrastructure layer.
type PaymentGateway interface {
	// CreateOrder opens a payment order in the gateway
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)

	// VerifySignature checks the HMAC signature the gateway computed over
	// the order and payment identifiers. Returns ErrInvalidSignature on
	// mismatch.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error
}

// ToMinorUnits converts a major-unit amount to the currency's minor unit
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
