package catalog

import (
	"time"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the storefront catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Category      string          `gorm:"type:varchar(100);not null;index"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // discounted price, active iff 0 < discount < price
	Stock         int             `gorm:"not null;default:0"`
	SoldCount     int             `gorm:"not null;default:0"`
	AverageRating decimal.Decimal `gorm:"type:decimal(2,1);not null;default:0"`
	TotalReviews  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description, category string, price, discount decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validatePricing(price, discount); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Category:          category,
		Price:             price,
		Discount:          discount,
		Stock:             stock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPricing sets the list price and the discounted price
func (p *Product) SetPricing(price, discount decimal.Decimal) error {
	if err := validatePricing(price, discount); err != nil {
		return err
	}

	oldPrice := p.Price
	oldDiscount := p.Discount

	p.Price = price
	p.Discount = discount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice, oldDiscount))

	return nil
}

// SetStock sets the available stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasActiveDiscount reports whether the discounted price is in effect.
// A discount counts only when it is strictly between zero and the list price.
func (p *Product) HasActiveDiscount() bool {
	return p.Discount.IsPositive() && p.Discount.LessThan(p.Price)
}

// EffectivePrice returns the price a buyer actually pays
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.HasActiveDiscount() {
		return p.Discount
	}
	return p.Price
}

// DiscountPercent returns the rounded percentage saved, 0 without an active discount
func (p *Product) DiscountPercent() int {
	if !p.HasActiveDiscount() {
		return 0
	}
	saved := p.Price.Sub(p.Discount)
	percent := saved.Div(p.Price).Mul(decimal.NewFromInt(100))
	return int(percent.Round(0).IntPart())
}

// InStock returns true if at least the requested quantity is available
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// ApplyRatingRollup replaces the denormalized review aggregates
func (p *Product) ApplyRatingRollup(averageRating decimal.Decimal, totalReviews int) {
	p.AverageRating = averageRating
	p.TotalReviews = totalReviews
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateCategory validates the category label
func validateCategory(category string) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	return nil
}

// validatePricing validates the list price and discounted price pair
func validatePricing(price, discount decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Discounted price cannot be negative")
	}
	if discount.GreaterThan(price) {
		return shared.NewDomainError("INVALID_PRICE", "Discounted price cannot exceed the list price")
	}
	return nil
}
