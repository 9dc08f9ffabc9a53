package cart

import (
	"time"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantityPerLine caps how many units a single cart line may hold
const MaxQuantityPerLine = 99

// CartItem represents one line in a user's cart.
// A line is identified by the (user, product, size) triple; adding the same
// triple again merges quantities instead of creating a second line.
type CartItem struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product_size,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product_size,priority:2"`
	Size      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_cart_user_product_size,priority:3"`
	Quantity  int             `gorm:"not null"`
	Name      string          `gorm:"type:varchar(200);not null"` // product snapshot at add time
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ImageURL  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a new cart line with a product snapshot
func NewCartItem(userID, productID uuid.UUID, size string, quantity int, name string, price decimal.Decimal, imageURL string) (*CartItem, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &CartItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ProductID:         productID,
		Size:              size,
		Quantity:          quantity,
		Name:              name,
		Price:             price,
		ImageURL:          imageURL,
	}, nil
}

// BelongsTo reports whether the line is owned by the given user
func (c *CartItem) BelongsTo(userID uuid.UUID) bool {
	return c.UserID == userID
}

// Increase adds to the line quantity
func (c *CartItem) Increase(by int) error {
	if by <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity change must be positive")
	}
	if err := validateQuantity(c.Quantity + by); err != nil {
		return err
	}

	c.Quantity += by
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Decrease removes from the line quantity.
// Returns true when the line reached zero and should be removed.
func (c *CartItem) Decrease(by int) (bool, error) {
	if by <= 0 {
		return false, shared.NewDomainError("INVALID_QUANTITY", "Quantity change must be positive")
	}

	c.Quantity -= by
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return c.Quantity <= 0, nil
}

// LineTotal returns quantity times the snapshot price
func (c *CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if quantity > MaxQuantityPerLine {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity exceeds the per-line limit")
	}
	return nil
}
