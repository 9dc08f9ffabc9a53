package catalog

import (
	"strings"
	"time"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxMediaFileSize is the maximum allowed file size (50MB)
const MaxMediaFileSize = 50 * 1024 * 1024

// MediaType represents the type of product media
type MediaType string

const (
	MediaTypeMainImage    MediaType = "main_image"
	MediaTypeGalleryImage MediaType = "gallery_image"
	MediaTypeVideo        MediaType = "video"
)

// IsValid checks if the media type is valid
func (t MediaType) IsValid() bool {
	switch t {
	case MediaTypeMainImage, MediaTypeGalleryImage, MediaTypeVideo:
		return true
	default:
		return false
	}
}

// IsImage returns true if the media type is an image type
func (t MediaType) IsImage() bool {
	return t == MediaTypeMainImage || t == MediaTypeGalleryImage
}

// MediaStatus represents the status of a product media object
type MediaStatus string

const (
	MediaStatusPending MediaStatus = "pending"
	MediaStatusActive  MediaStatus = "active"
	MediaStatusDeleted MediaStatus = "deleted"
)

// ProductMedia represents an image or video stored for a product.
// Files live in object storage; this entity tracks the storage key.
type ProductMedia struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Type        MediaType   `gorm:"type:varchar(20);not null"`
	Status      MediaStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	FileName    string      `gorm:"type:varchar(255);not null"`
	FileSize    int64       `gorm:"not null"`
	ContentType string      `gorm:"type:varchar(100);not null"`
	StorageKey  string      `gorm:"type:varchar(500);not null"`
	SortOrder   int         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductMedia) TableName() string {
	return "product_media"
}

// NewProductMedia creates a new product media record in pending status
func NewProductMedia(
	productID uuid.UUID,
	mediaType MediaType,
	fileName string,
	fileSize int64,
	contentType string,
	storageKey string,
) (*ProductMedia, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if !mediaType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MEDIA_TYPE", "Invalid media type")
	}
	if err := validateMediaFileName(fileName); err != nil {
		return nil, err
	}
	if fileSize <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be greater than 0")
	}
	if fileSize > MaxMediaFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "File size cannot exceed 50MB")
	}
	if err := validateMediaContentType(contentType, mediaType); err != nil {
		return nil, err
	}
	if err := validateStorageKey(storageKey); err != nil {
		return nil, err
	}

	return &ProductMedia{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Type:              mediaType,
		Status:            MediaStatusPending,
		FileName:          fileName,
		FileSize:          fileSize,
		ContentType:       contentType,
		StorageKey:        storageKey,
	}, nil
}

// Confirm activates the media after the file landed in storage
func (m *ProductMedia) Confirm() error {
	if m.Status == MediaStatusActive {
		return shared.NewDomainError("ALREADY_CONFIRMED", "Media is already confirmed")
	}
	if m.Status == MediaStatusDeleted {
		return shared.NewDomainError("CANNOT_CONFIRM_DELETED", "Cannot confirm deleted media")
	}

	m.Status = MediaStatusActive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Delete marks the media as deleted (soft delete)
func (m *ProductMedia) Delete() error {
	if m.Status == MediaStatusDeleted {
		return shared.NewDomainError("ALREADY_DELETED", "Media is already deleted")
	}

	m.Status = MediaStatusDeleted
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetAsMainImage promotes a gallery image to the main image slot
func (m *ProductMedia) SetAsMainImage() error {
	if m.Status == MediaStatusDeleted {
		return shared.NewDomainError("CANNOT_UPDATE_DELETED", "Cannot update deleted media")
	}
	if !m.Type.IsImage() {
		return shared.NewDomainError("NOT_AN_IMAGE", "Only images can be set as the main image")
	}

	m.Type = MediaTypeMainImage
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order of the media
func (m *ProductMedia) SetSortOrder(order int) error {
	if order < 0 {
		return shared.NewDomainError("INVALID_SORT_ORDER", "Sort order cannot be negative")
	}

	m.SortOrder = order
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// IsActive returns true if the media is active
func (m *ProductMedia) IsActive() bool {
	return m.Status == MediaStatusActive
}

func validateMediaFileName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}

func validateMediaContentType(contentType string, mediaType MediaType) error {
	if contentType == "" {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot be empty")
	}
	if mediaType.IsImage() && !strings.HasPrefix(contentType, "image/") {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Image media requires an image content type")
	}
	if mediaType == MediaTypeVideo && !strings.HasPrefix(contentType, "video/") {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Video media requires a video content type")
	}
	return nil
}

func validateStorageKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot exceed 500 characters")
	}
	if strings.Contains(key, "..") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot contain path traversal sequences")
	}
	if strings.HasPrefix(key, "/") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key must be a relative path")
	}
	return nil
}
