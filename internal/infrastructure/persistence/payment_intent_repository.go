package persistence

import (
	"context"
	"errors"

	"github.com/craftshop/backend/internal/domain/checkout"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentIntentRepository implements PaymentIntentRepository using GORM
type GormPaymentIntentRepository struct {
	db *gorm.DB
}

// NewGormPaymentIntentRepository creates a new GormPaymentIntentRepository
func NewGormPaymentIntentRepository(db *gorm.DB) *GormPaymentIntentRepository {
	return &GormPaymentIntentRepository{db: db}
}

// FindByID finds an intent with its frozen cart lines by its ID
func (r *GormPaymentIntentRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.PaymentIntent, error) {
	var intent checkout.PaymentIntent
	if err := r.db.WithContext(ctx).Preload("Items").First(&intent, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &intent, nil
}

// FindByGatewayOrderID finds an intent with its frozen cart lines by the
// gateway's order ID. Settlement builds the order from those lines.
func (r *GormPaymentIntentRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*checkout.PaymentIntent, error) {
	var intent checkout.PaymentIntent
	if err := r.db.WithContext(ctx).Preload("Items").First(&intent, "gateway_order_id = ?", gatewayOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &intent, nil
}

// Save creates or updates an intent
func (r *GormPaymentIntentRepository) Save(ctx context.Context, intent *checkout.PaymentIntent) error {
	return r.db.WithContext(ctx).Save(intent).Error
}

// Ensure GormPaymentIntentRepository implements PaymentIntentRepository
var _ checkout.PaymentIntentRepository = (*GormPaymentIntentRepository)(nil)
