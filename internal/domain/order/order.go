package order

import (
	"time"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is reserved; no transition reaches it today.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order is a settled purchase. It is keyed by the gateway order ID so that
// repeated settlement of the same payment never produces a second order.
type Order struct {
	shared.BaseAggregateRoot
	GatewayOrderID   string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	GatewayPaymentID string          `gorm:"type:varchar(100);not null"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:'paid'"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DeliveredAt      *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line inside an order
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int             `gorm:"not null"`
	Size      string          `gorm:"type:varchar(20)"`
	ImageURL  string          `gorm:"type:varchar(500)"`
	IsRated   bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a purchased line snapshot
func NewOrderItem(productID uuid.UUID, name string, price decimal.Decimal, quantity int, size, imageURL string) (OrderItem, error) {
	if productID == uuid.Nil {
		return OrderItem{}, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if price.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		Size:       size,
		ImageURL:   imageURL,
	}, nil
}

// NewOrder creates a settled order from purchased lines
func NewOrder(gatewayOrderID, gatewayPaymentID string, userID uuid.UUID, amount decimal.Decimal, items []OrderItem) (*Order, error) {
	if gatewayOrderID == "" {
		return nil, shared.NewDomainError("INVALID_GATEWAY_ORDER", "Gateway order ID cannot be empty")
	}
	if gatewayPaymentID == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_ID", "Gateway payment ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GatewayOrderID:    gatewayOrderID,
		GatewayPaymentID:  gatewayPaymentID,
		UserID:            userID,
		Amount:            amount,
		Status:            OrderStatusPaid,
	}
	for i := range items {
		items[i].OrderID = o.ID
	}
	o.Items = items

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// MarkDelivered moves a paid order to delivered. The transition is one-way.
func (o *Order) MarkDelivered() error {
	if o.Status == OrderStatusDelivered {
		return shared.NewDomainError("ALREADY_DELIVERED", "Order is already delivered")
	}
	if o.Status != OrderStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid orders can be delivered")
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

// FindItem returns the purchased line with the given ID
func (o *Order) FindItem(itemID uuid.UUID) (*OrderItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// MarkItemRated flips the rated flag on a purchased line exactly once
func (o *Order) MarkItemRated(itemID uuid.UUID) error {
	item, err := o.FindItem(itemID)
	if err != nil {
		return err
	}
	if item.IsRated {
		return shared.ErrDuplicateReview
	}

	item.IsRated = true
	item.UpdatedAt = time.Now()
	o.UpdatedAt = item.UpdatedAt
	o.IncrementVersion()

	return nil
}

// BelongsTo reports whether the order is owned by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}
