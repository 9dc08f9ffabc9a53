package review

import (
	"time"

	"github.com/craftshop/backend/internal/domain/review"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateReviewRequest rates one purchased order line
type CreateReviewRequest struct {
	OrderID     uuid.UUID `json:"order_id" binding:"required"`
	OrderItemID uuid.UUID `json:"order_item_id" binding:"required"`
	Rating      int       `json:"rating" binding:"required,gte=1,lte=5"`
	Comment     string    `json:"comment" binding:"max=2000"`
}

// ReviewResponse is one review returned to clients
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductReviewsResponse lists a product's reviews with its rating summary
type ProductReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating decimal.Decimal  `json:"average_rating"`
	TotalReviews  int              `json:"total_reviews"`
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(r *review.Review, reviewerName string) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		ReviewerName: reviewerName,
		CreatedAt:    r.CreatedAt,
	}
}
