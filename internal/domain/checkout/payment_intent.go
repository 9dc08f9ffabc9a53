package checkout

import (
	"time"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency every payment order is opened in
const DefaultCurrency = "INR"

// IntentStatus represents the lifecycle of a payment intent
type IntentStatus string

const (
	IntentStatusCreated IntentStatus = "created"
	IntentStatusPaid    IntentStatus = "paid"
)

// PaymentIntent tracks one attempt to pay for a cart.
// It is keyed by the order ID the gateway assigned; settlement is idempotent
// on that key.
type PaymentIntent struct {
	shared.BaseAggregateRoot
	GatewayOrderID   string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AmountMinor      int64           `gorm:"not null"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	Receipt          string          `gorm:"type:varchar(100);not null"`
	Status           IntentStatus    `gorm:"type:varchar(20);not null;default:'created'"`
	GatewayPaymentID string          `gorm:"type:varchar(100)"`
	Items            []IntentItem    `gorm:"foreignKey:IntentID;constraint:OnDelete:CASCADE"`
	PaidAt           *time.Time
}

// TableName returns the table name for GORM
func (PaymentIntent) TableName() string {
	return "payment_intents"
}

// IntentItem is one cart line frozen at intent creation. Settlement builds
// the order from these lines, so cart edits between payment and callback
// cannot change what was bought.
type IntentItem struct {
	shared.BaseEntity
	IntentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int             `gorm:"not null"`
	Size      string          `gorm:"type:varchar(20)"`
	ImageURL  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (IntentItem) TableName() string {
	return "payment_intent_items"
}

// NewIntentItem creates a frozen cart line for a payment intent
func NewIntentItem(productID uuid.UUID, name string, price decimal.Decimal, quantity int, size, imageURL string) (IntentItem, error) {
	if productID == uuid.Nil {
		return IntentItem{}, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return IntentItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if price.IsNegative() {
		return IntentItem{}, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return IntentItem{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		Size:       size,
		ImageURL:   imageURL,
	}, nil
}

// NewPaymentIntent creates a payment intent for a gateway order
func NewPaymentIntent(gatewayOrderID string, userID uuid.UUID, amount decimal.Decimal, receipt string, items []IntentItem) (*PaymentIntent, error) {
	if gatewayOrderID == "" {
		return nil, shared.NewDomainError("INVALID_GATEWAY_ORDER", "Gateway order ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if receipt == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Payment intent must cover at least one cart line")
	}

	intent := &PaymentIntent{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GatewayOrderID:    gatewayOrderID,
		UserID:            userID,
		Amount:            amount,
		AmountMinor:       ToMinorUnits(amount),
		Currency:          DefaultCurrency,
		Receipt:           receipt,
		Status:            IntentStatusCreated,
	}
	for i := range items {
		items[i].IntentID = intent.ID
	}
	intent.Items = items

	intent.AddDomainEvent(NewPaymentIntentCreatedEvent(intent))

	return intent, nil
}

// MarkPaid transitions the intent to paid and records the gateway payment.
// Marking an already paid intent again is a no-op so settlement retries stay
// idempotent.
func (i *PaymentIntent) MarkPaid(gatewayPaymentID string) error {
	if gatewayPaymentID == "" {
		return shared.NewDomainError("INVALID_PAYMENT_ID", "Gateway payment ID cannot be empty")
	}
	if i.Status == IntentStatusPaid {
		return nil
	}

	now := time.Now()
	i.Status = IntentStatusPaid
	i.GatewayPaymentID = gatewayPaymentID
	i.PaidAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewPaymentIntentPaidEvent(i))

	return nil
}

// IsPaid returns true once the intent settled
func (i *PaymentIntent) IsPaid() bool {
	return i.Status == IntentStatusPaid
}

// BelongsTo reports whether the intent is owned by the given user
func (i *PaymentIntent) BelongsTo(userID uuid.UUID) bool {
	return i.UserID == userID
}
