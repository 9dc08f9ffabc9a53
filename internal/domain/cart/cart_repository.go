package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart line by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CartItem, error)

	// FindByUser finds all cart lines for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)

	// Upsert inserts the line or, when the (user, product, size) triple
	// already exists, atomically adds the quantity to the existing line.
	Upsert(ctx context.Context, item *CartItem) error

	// Save updates an existing cart line
	Save(ctx context.Context, item *CartItem) error

	// Delete removes a cart line
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes every cart line owned by the user
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
