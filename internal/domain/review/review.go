package review

import (
	"time"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Review is a buyer's rating of one purchased order line.
// A buyer reviews each purchased line at most once.
type Review struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_item_user,priority:1"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_item_user,priority:2"`
	Rating      int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment     string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review for a purchased order line
func NewReview(productID, orderItemID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if orderItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_ITEM_ID", "Order item ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if len(comment) > 2000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		OrderItemID:       orderItemID,
		UserID:            userID,
		Rating:            rating,
		Comment:           comment,
	}, nil
}

// Update changes the rating and comment of an existing review
func (r *Review) Update(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}

	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}

// Rollup is the denormalized review summary stored on the product
type Rollup struct {
	AverageRating decimal.Decimal
	TotalReviews  int
}

// NewRollup computes the product summary from a rating sum and count.
// The average rounds to one decimal place; an empty set yields zero, not NaN.
func NewRollup(ratingSum int64, count int) Rollup {
	if count == 0 {
		return Rollup{AverageRating: decimal.Zero}
	}
	avg := decimal.NewFromInt(ratingSum).Div(decimal.NewFromInt(int64(count))).Round(1)
	return Rollup{AverageRating: avg, TotalReviews: count}
}
