package persistence

import (
	"context"
	"errors"

	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductMediaRepository implements ProductMediaRepository using GORM
type GormProductMediaRepository struct {
	db *gorm.DB
}

// NewGormProductMediaRepository creates a new GormProductMediaRepository
func NewGormProductMediaRepository(db *gorm.DB) *GormProductMediaRepository {
	return &GormProductMediaRepository{db: db}
}

// FindByID finds a media record by its ID
func (r *GormProductMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductMedia, error) {
	var media catalog.ProductMedia
	if err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

// FindByProduct finds all non-deleted media for a product ordered by sort order
func (r *GormProductMediaRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductMedia, error) {
	var media []catalog.ProductMedia
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND status <> ?", productID, catalog.MediaStatusDeleted).
		Order("sort_order ASC, created_at ASC").
		Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// FindMainImage finds the active main image for a product
func (r *GormProductMediaRepository) FindMainImage(ctx context.Context, productID uuid.UUID) (*catalog.ProductMedia, error) {
	var media catalog.ProductMedia
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND type = ? AND status = ?",
			productID, catalog.MediaTypeMainImage, catalog.MediaStatusActive).
		First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

// Save creates or updates a media record
func (r *GormProductMediaRepository) Save(ctx context.Context, media *catalog.ProductMedia) error {
	return r.db.WithContext(ctx).Save(media).Error
}

// Delete deletes a media record
func (r *GormProductMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductMedia{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductMediaRepository implements ProductMediaRepository
var _ catalog.ProductMediaRepository = (*GormProductMediaRepository)(nil)
