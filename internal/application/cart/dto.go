package cart

import (
	"time"

	"github.com/craftshop/backend/internal/domain/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the input for adding a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=20"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdateQuantityRequest adjusts a cart line up or down. By defaults to one
// step when omitted.
type UpdateQuantityRequest struct {
	Action string `json:"action" binding:"required,oneof=increase decrease"`
	By     int    `json:"by" binding:"omitempty,gt=0"`
}

// Step returns the adjustment size, defaulting to 1 when the client sent
// only the action
func (r UpdateQuantityRequest) Step() int {
	if r.By <= 0 {
		return 1
	}
	return r.By
}

// CartItemResponse is one cart line returned to clients
type CartItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
	ImageURL  string          `json:"image_url,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartResponse is the full cart view with totals
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	TotalUnits int                `json:"total_units"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
}

// ToCartItemResponse converts a domain cart line to a response DTO
func ToCartItemResponse(item *cart.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Size:      item.Size,
		Quantity:  item.Quantity,
		Price:     item.Price,
		LineTotal: item.LineTotal(),
		ImageURL:  item.ImageURL,
		AddedAt:   item.CreatedAt,
	}
}

// ToCartResponse converts domain cart lines to the full cart view
func ToCartResponse(items []cart.CartItem) CartResponse {
	response := CartResponse{
		Items:    make([]CartItemResponse, len(items)),
		Subtotal: decimal.Zero,
	}
	for i := range items {
		response.Items[i] = ToCartItemResponse(&items[i])
		response.TotalUnits += items[i].Quantity
		response.Subtotal = response.Subtotal.Add(items[i].LineTotal())
	}
	response.ItemCount = len(items)
	return response
}
