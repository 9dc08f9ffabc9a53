package order

import (
	"time"

	"github.com/craftshop/backend/internal/domain/identity"
	"github.com/craftshop/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListOrdersFilter narrows the admin order listing
type ListOrdersFilter struct {
	Page     int    `form:"page" binding:"omitempty,gt=0"`
	PageSize int    `form:"page_size" binding:"omitempty,gt=0,lte=100"`
	Status   string `form:"status" binding:"omitempty,oneof=paid delivered cancelled"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
}

// OrderItemResponse is one purchased line returned to clients
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
	IsRated   bool            `json:"is_rated"`
}

// BuyerResponse identifies the buyer on an admin order view
type BuyerResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address,omitempty"`
}

// OrderResponse is a full order view
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	GatewayOrderID   string              `json:"gateway_order_id"`
	GatewayPaymentID string              `json:"gateway_payment_id"`
	Status           string              `json:"status"`
	Amount           decimal.Decimal     `json:"amount"`
	Items            []OrderItemResponse `json:"items"`
	Buyer            *BuyerResponse      `json:"buyer,omitempty"`
	PlacedAt         time.Time           `json:"placed_at"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
}

// OrderListResponse is a paginated order listing
type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ToOrderItemResponse converts a purchased line to a response DTO
func ToOrderItemResponse(item *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Size:      item.Size,
		ImageURL:  item.ImageURL,
		IsRated:   item.IsRated,
	}
}

// ToOrderResponse converts a domain order to a response DTO. buyer may be nil
// when the caller is the buyer themselves.
func ToOrderResponse(o *order.Order, buyer *identity.User) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}

	response := OrderResponse{
		ID:               o.ID,
		GatewayOrderID:   o.GatewayOrderID,
		GatewayPaymentID: o.GatewayPaymentID,
		Status:           string(o.Status),
		Amount:           o.Amount,
		Items:            items,
		PlacedAt:         o.CreatedAt,
		DeliveredAt:      o.DeliveredAt,
	}
	if buyer != nil {
		response.Buyer = &BuyerResponse{
			ID:      buyer.ID,
			Name:    buyer.Name,
			Email:   buyer.Email,
			Address: buyer.Address,
		}
	}
	return response
}
