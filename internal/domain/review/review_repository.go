package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByProduct finds all reviews for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)

	// FindByUser finds all reviews written by a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)

	// ExistsForOrderItem reports whether the user already reviewed the line
	ExistsForOrderItem(ctx context.Context, orderItemID, userID uuid.UUID) (bool, error)

	// Save creates or updates a review
	Save(ctx context.Context, r *Review) error

	// RollupForProduct aggregates the rating sum and count for a product
	RollupForProduct(ctx context.Context, productID uuid.UUID) (Rollup, error)
}
