package checkout

import (
	"time"

	"github.com/craftshop/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateIntentResponse carries what the frontend needs to open the
// gateway's checkout widget
type CreateIntentResponse struct {
	GatewayOrderID string          `json:"gateway_order_id"`
	Amount         decimal.Decimal `json:"amount"`
	AmountMinor    int64           `json:"amount_minor"`
	Currency       string          `json:"currency"`
	KeyID          string          `json:"key_id"`
	Receipt        string          `json:"receipt"`
}

// VerifyPaymentRequest is the callback payload the frontend relays after
// the buyer completes payment in the gateway widget
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// SettledItemResponse is one purchased line in the settlement result
type SettledItemResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size,omitempty"`
}

// SettlementResponse is the settled order returned after verification
type SettlementResponse struct {
	OrderID        uuid.UUID             `json:"order_id"`
	GatewayOrderID string                `json:"gateway_order_id"`
	Status         string                `json:"status"`
	Amount         decimal.Decimal       `json:"amount"`
	Items          []SettledItemResponse `json:"items"`
	PlacedAt       time.Time             `json:"placed_at"`
}

// ToSettlementResponse converts a settled order to a response DTO
func ToSettlementResponse(o *order.Order) SettlementResponse {
	items := make([]SettledItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = SettledItemResponse{
			ID:       o.Items[i].ID,
			Name:     o.Items[i].Name,
			Price:    o.Items[i].Price,
			Quantity: o.Items[i].Quantity,
			Size:     o.Items[i].Size,
		}
	}
	return SettlementResponse{
		OrderID:        o.ID,
		GatewayOrderID: o.GatewayOrderID,
		Status:         string(o.Status),
		Amount:         o.Amount,
		Items:          items,
		PlacedAt:       o.CreatedAt,
	}
}
