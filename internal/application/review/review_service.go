package review

import (
	"context"

	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/identity"
	"github.com/craftshop/backend/internal/domain/order"
	"github.com/craftshop/backend/internal/domain/review"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService handles product reviews and the denormalized rating rollup
type ReviewService struct {
	reviewRepo  review.ReviewRepository
	orderRepo   order.OrderRepository
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo review.ReviewRepository,
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Create rates one purchased order line. A buyer can only review lines in
// their own orders and each line at most once. The product's rating summary
// is recomputed from all stored reviews after the save.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}
	item, err := o.FindItem(req.OrderItemID)
	if err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForOrderItem(ctx, item.ID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateReview
	}

	r, err := review.NewReview(item.ProductID, item.ID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	if err := o.MarkItemRated(item.ID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.refreshProductRating(ctx, item.ProductID)

	response := ToReviewResponse(r, "")
	return &response, nil
}

// ListByProduct returns a product's reviews with reviewer names and the
// current rating summary
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) (*ProductReviewsResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rollup, err := s.reviewRepo.RollupForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	names, err := s.loadReviewerNames(ctx, reviews)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i], names[reviews[i].UserID])
	}

	return &ProductReviewsResponse{
		Reviews:       responses,
		AverageRating: rollup.AverageRating,
		TotalReviews:  rollup.TotalReviews,
	}, nil
}

// MyReviews returns every review the user has written, newest first
func (s *ReviewService) MyReviews(ctx context.Context, userID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i], "")
	}
	return responses, nil
}

// refreshProductRating recomputes the denormalized rating summary on the
// product. The review itself is already stored; a failed refresh is logged
// and corrected by the next review.
func (s *ReviewService) refreshProductRating(ctx context.Context, productID uuid.UUID) {
	rollup, err := s.reviewRepo.RollupForProduct(ctx, productID)
	if err != nil {
		s.logger.Warn("failed to aggregate product reviews",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		s.logger.Warn("failed to load product for rating refresh",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return
	}
	product.ApplyRatingRollup(rollup.AverageRating, rollup.TotalReviews)
	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Warn("failed to save product rating summary",
			zap.String("product_id", productID.String()),
			zap.Error(err))
	}
}

// loadReviewerNames fetches the display names of the reviews' authors
func (s *ReviewService) loadReviewerNames(ctx context.Context, reviews []review.Review) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]struct{}, len(reviews))
	ids := make([]uuid.UUID, 0, len(reviews))
	for i := range reviews {
		if _, ok := seen[reviews[i].UserID]; ok {
			continue
		}
		seen[reviews[i].UserID] = struct{}{}
		ids = append(ids, reviews[i].UserID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].Name
	}
	return names, nil
}
