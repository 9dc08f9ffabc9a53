package catalog

import (
	"context"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products in a category
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// IncrementSoldCount adds quantity to the product's sold counter atomically
	IncrementSoldCount(ctx context.Context, id uuid.UUID, quantity int) error
}

// ProductMediaRepository defines the interface for product media persistence
type ProductMediaRepository interface {
	// FindByID finds a media record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductMedia, error)

	// FindByProduct finds all non-deleted media for a product ordered by sort order
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductMedia, error)

	// FindMainImage finds the active main image for a product
	FindMainImage(ctx context.Context, productID uuid.UUID) (*ProductMedia, error)

	// Save creates or updates a media record
	Save(ctx context.Context, media *ProductMedia) error

	// Delete deletes a media record
	Delete(ctx context.Context, id uuid.UUID) error
}
