package persistence

import (
	"context"
	"errors"

	"github.com/craftshop/backend/internal/domain/review"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var rv review.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// FindByProduct finds all reviews for a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]review.Review, error) {
	var reviews []review.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByUser finds all reviews written by a user, newest first
func (r *GormReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]review.Review, error) {
	var reviews []review.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ExistsForOrderItem reports whether the user already reviewed the line
func (r *GormReviewRepository) ExistsForOrderItem(ctx context.Context, orderItemID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("order_item_id = ? AND user_id = ?", orderItemID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

// RollupForProduct aggregates the rating sum and count for a product.
// COALESCE keeps the sum at zero when the product has no reviews yet.
func (r *GormReviewRepository) RollupForProduct(ctx context.Context, productID uuid.UUID) (review.Rollup, error) {
	var agg struct {
		RatingSum int64
		Total     int
	}
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Select("COALESCE(SUM(rating), 0) AS rating_sum, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&agg).Error; err != nil {
		return review.Rollup{}, err
	}
	return review.NewRollup(agg.RatingSum, agg.Total), nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ review.ReviewRepository = (*GormReviewRepository)(nil)
