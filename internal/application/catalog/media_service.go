package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadURLExpiry = 15 * time.Minute

// MediaService manages product media through presigned object storage URLs
type MediaService struct {
	productRepo catalog.ProductRepository
	mediaRepo   catalog.ProductMediaRepository
	storage     ObjectStorageService
	logger      *zap.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(
	productRepo catalog.ProductRepository,
	mediaRepo catalog.ProductMediaRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *MediaService {
	return &MediaService{
		productRepo: productRepo,
		mediaRepo:   mediaRepo,
		storage:     storage,
		logger:      logger,
	}
}

// RequestUpload creates a pending media record and returns a presigned PUT URL
func (s *MediaService) RequestUpload(ctx context.Context, productID uuid.UUID, req RequestMediaUploadRequest) (*MediaUploadResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("products/%s/%s/%s", productID, uuid.New(), req.FileName)

	media, err := catalog.NewProductMedia(
		productID,
		catalog.MediaType(req.Type),
		req.FileName,
		req.FileSize,
		req.ContentType,
		storageKey,
	)
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.mediaRepo.Save(ctx, media); err != nil {
		return nil, err
	}

	return &MediaUploadResponse{
		MediaID:   media.ID,
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload activates a pending media record after checking the object landed
func (s *MediaService) ConfirmUpload(ctx context.Context, mediaID uuid.UUID) (*MediaResponse, error) {
	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, media.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "No uploaded file found for this media")
	}

	if err := media.Confirm(); err != nil {
		return nil, err
	}
	if err := s.mediaRepo.Save(ctx, media); err != nil {
		return nil, err
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, media.StorageKey, 0)
	if err != nil {
		s.logger.Warn("Failed to presign media download URL",
			zap.String("media_id", media.ID.String()),
			zap.Error(err),
		)
		url = ""
	}

	response := ToMediaResponse(media, url)
	return &response, nil
}

// ListByProduct returns all media for a product with presigned download URLs
func (s *MediaService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]MediaResponse, error) {
	media, err := s.mediaRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]MediaResponse, len(media))
	for i := range media {
		url := ""
		if media[i].IsActive() {
			u, _, err := s.storage.GenerateDownloadURL(ctx, media[i].StorageKey, 0)
			if err == nil {
				url = u
			}
		}
		responses[i] = ToMediaResponse(&media[i], url)
	}
	return responses, nil
}

// Delete soft-deletes a media record and removes the stored object
func (s *MediaService) Delete(ctx context.Context, mediaID uuid.UUID) error {
	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return err
	}

	if err := media.Delete(); err != nil {
		return err
	}
	if err := s.mediaRepo.Save(ctx, media); err != nil {
		return err
	}

	// the record is already soft-deleted; a stranded object only costs storage
	if err := s.storage.DeleteObject(ctx, media.StorageKey); err != nil {
		s.logger.Warn("Failed to delete media object from storage",
			zap.String("storage_key", media.StorageKey),
			zap.Error(err),
		)
	}
	return nil
}
