package catalog

import (
	"context"
	"time"
)

// ObjectStorageService abstracts the S3-compatible store holding product media.
// Browsers upload and fetch media through presigned URLs so image and video
// bytes never pass through the API process.
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL for the storage key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the storage key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object at the storage key
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks whether the object was actually uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
