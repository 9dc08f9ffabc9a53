package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductMediaRepository is a mock implementation of ProductMediaRepository
type MockProductMediaRepository struct {
	mock.Mock
}

func (m *MockProductMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductMedia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductMedia), args.Error(1)
}

func (m *MockProductMediaRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductMedia, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ProductMedia), args.Error(1)
}

func (m *MockProductMediaRepository) FindMainImage(ctx context.Context, productID uuid.UUID) (*catalog.ProductMedia, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductMedia), args.Error(1)
}

func (m *MockProductMediaRepository) Save(ctx context.Context, media *catalog.ProductMedia) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockProductMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func newMediaServiceUnderTest() (*MediaService, *MockProductRepository, *MockProductMediaRepository, *MockObjectStorage) {
	productRepo := new(MockProductRepository)
	mediaRepo := new(MockProductMediaRepository)
	storage := new(MockObjectStorage)
	service := NewMediaService(productRepo, mediaRepo, storage, zap.NewNop())
	return service, productRepo, mediaRepo, storage
}

func TestMediaService_RequestUpload(t *testing.T) {
	t.Run("creates pending media with a presigned URL", func(t *testing.T) {
		service, productRepo, mediaRepo, storage := newMediaServiceUnderTest()

		product, err := catalog.NewProduct("Clay Pot", "", "pottery", decimal.NewFromInt(400), decimal.Zero, 10)
		require.NoError(t, err)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		storage.On("GenerateUploadURL", mock.Anything, mock.AnythingOfType("string"), "image/jpeg", uploadURLExpiry).
			Return("https://storage.example.com/put", time.Now().Add(uploadURLExpiry), nil)
		mediaRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.ProductMedia")).Return(nil)

		resp, err := service.RequestUpload(context.Background(), product.ID, RequestMediaUploadRequest{
			Type:        "main_image",
			FileName:    "pot.jpg",
			FileSize:    1024,
			ContentType: "image/jpeg",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.MediaID)
		assert.Equal(t, "https://storage.example.com/put", resp.UploadURL)
		mediaRepo.AssertExpectations(t)
	})

	t.Run("rejects media for an unknown product", func(t *testing.T) {
		service, productRepo, _, _ := newMediaServiceUnderTest()

		id := uuid.New()
		productRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.RequestUpload(context.Background(), id, RequestMediaUploadRequest{
			Type:        "main_image",
			FileName:    "pot.jpg",
			FileSize:    1024,
			ContentType: "image/jpeg",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestMediaService_ConfirmUpload(t *testing.T) {
	newPendingMedia := func(t *testing.T) *catalog.ProductMedia {
		media, err := catalog.NewProductMedia(uuid.New(), catalog.MediaTypeMainImage, "pot.jpg", 1024, "image/jpeg", "products/x/pot.jpg")
		require.NoError(t, err)
		return media
	}

	t.Run("activates media once the object exists", func(t *testing.T) {
		service, _, mediaRepo, storage := newMediaServiceUnderTest()
		media := newPendingMedia(t)

		mediaRepo.On("FindByID", mock.Anything, media.ID).Return(media, nil)
		storage.On("ObjectExists", mock.Anything, media.StorageKey).Return(true, nil)
		mediaRepo.On("Save", mock.Anything, media).Return(nil)
		storage.On("GenerateDownloadURL", mock.Anything, media.StorageKey, time.Duration(0)).
			Return("https://storage.example.com/get", time.Now(), nil)

		resp, err := service.ConfirmUpload(context.Background(), media.ID)

		require.NoError(t, err)
		assert.Equal(t, string(catalog.MediaStatusActive), resp.Status)
		assert.Equal(t, "https://storage.example.com/get", resp.URL)
	})

	t.Run("refuses to confirm when no object was uploaded", func(t *testing.T) {
		service, _, mediaRepo, storage := newMediaServiceUnderTest()
		media := newPendingMedia(t)

		mediaRepo.On("FindByID", mock.Anything, media.ID).Return(media, nil)
		storage.On("ObjectExists", mock.Anything, media.StorageKey).Return(false, nil)

		_, err := service.ConfirmUpload(context.Background(), media.ID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "No uploaded file")
		mediaRepo.AssertNotCalled(t, "Save")
	})
}

func TestMediaService_Delete(t *testing.T) {
	t.Run("soft-deletes and removes the object", func(t *testing.T) {
		service, _, mediaRepo, storage := newMediaServiceUnderTest()

		media, err := catalog.NewProductMedia(uuid.New(), catalog.MediaTypeGalleryImage, "pot.jpg", 1024, "image/jpeg", "products/x/pot.jpg")
		require.NoError(t, err)

		mediaRepo.On("FindByID", mock.Anything, media.ID).Return(media, nil)
		mediaRepo.On("Save", mock.Anything, media).Return(nil)
		storage.On("DeleteObject", mock.Anything, media.StorageKey).Return(nil)

		err = service.Delete(context.Background(), media.ID)

		require.NoError(t, err)
		assert.Equal(t, catalog.MediaStatusDeleted, media.Status)
		storage.AssertExpectations(t)
	})
}
