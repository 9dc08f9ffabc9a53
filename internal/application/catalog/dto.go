package catalog

import (
	"time"

	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required,max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	Stock       int             `json:"stock" binding:"min=0"`
}

// UpdateProductRequest is the input for updating a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required,max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	Stock       int             `json:"stock" binding:"min=0"`
}

// ProductListFilter carries catalog browsing options
type ProductListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  bool
}

// ProductResponse is the product view returned to clients.
// EffectivePrice and DiscountPercent are derived so every surface shows the
// same sale math.
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Discount        decimal.Decimal `json:"discount"`
	EffectivePrice  decimal.Decimal `json:"effective_price"`
	DiscountPercent int             `json:"discount_percent"`
	OnSale          bool            `json:"on_sale"`
	Stock           int             `json:"stock"`
	InStock         bool            `json:"in_stock"`
	SoldCount       int             `json:"sold_count"`
	AverageRating   decimal.Decimal `json:"average_rating"`
	TotalReviews    int             `json:"total_reviews"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		Discount:        p.Discount,
		EffectivePrice:  p.EffectivePrice(),
		DiscountPercent: p.DiscountPercent(),
		OnSale:          p.HasActiveDiscount(),
		Stock:           p.Stock,
		InStock:         p.InStock(1),
		SoldCount:       p.SoldCount,
		AverageRating:   p.AverageRating,
		TotalReviews:    p.TotalReviews,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// RequestMediaUploadRequest is the input for opening a media upload
type RequestMediaUploadRequest struct {
	Type        string `json:"type" binding:"required,oneof=main_image gallery_image video"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
	ContentType string `json:"content_type" binding:"required"`
}

// MediaUploadResponse carries the presigned PUT URL for the client
type MediaUploadResponse struct {
	MediaID   uuid.UUID `json:"media_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MediaResponse is the media view returned to clients
type MediaResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url,omitempty"`
	SortOrder   int       `json:"sort_order"`
}

// ToMediaResponse converts domain media to a response DTO
func ToMediaResponse(m *catalog.ProductMedia, url string) MediaResponse {
	return MediaResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        string(m.Type),
		Status:      string(m.Status),
		FileName:    m.FileName,
		ContentType: m.ContentType,
		URL:         url,
		SortOrder:   m.SortOrder,
	}
}
