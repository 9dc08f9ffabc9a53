package catalog

import (
	"context"
	"testing"

	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) IncrementSoldCount(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates a valid product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{
			Name:     "Terracotta Vase",
			Category: "pottery",
			Price:    decimal.NewFromInt(500),
			Discount: decimal.NewFromInt(400),
			Stock:    10,
		})

		require.NoError(t, err)
		assert.Equal(t, "Terracotta Vase", resp.Name)
		assert.True(t, resp.OnSale)
		assert.True(t, resp.EffectivePrice.Equal(decimal.NewFromInt(400)))
		assert.Equal(t, 20, resp.DiscountPercent)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a discount above the list price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(context.Background(), CreateProductRequest{
			Name:     "Terracotta Vase",
			Category: "pottery",
			Price:    decimal.NewFromInt(500),
			Discount: decimal.NewFromInt(600),
			Stock:    10,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed the list price")
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_List(t *testing.T) {
	t.Run("applies defaults and maps filters", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		p, err := catalog.NewProduct("Wool Shawl", "", "textiles", decimal.NewFromInt(1200), decimal.Zero, 5)
		require.NoError(t, err)

		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20 && f.Filters["category"] == "textiles"
		})).Return([]catalog.Product{*p}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		products, total, err := service.List(context.Background(), ProductListFilter{Category: "textiles"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Wool Shawl", products[0].Name)
		repo.AssertExpectations(t)
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("updates details, pricing and stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		p, err := catalog.NewProduct("Clay Pot", "", "pottery", decimal.NewFromInt(400), decimal.Zero, 10)
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		repo.On("Save", mock.Anything, p).Return(nil)

		resp, err := service.Update(context.Background(), p.ID, UpdateProductRequest{
			Name:     "Glazed Clay Pot",
			Category: "pottery",
			Price:    decimal.NewFromInt(450),
			Discount: decimal.NewFromInt(300),
			Stock:    7,
		})

		require.NoError(t, err)
		assert.Equal(t, "Glazed Clay Pot", resp.Name)
		assert.True(t, resp.EffectivePrice.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, 7, resp.Stock)
		repo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), id, UpdateProductRequest{
			Name:     "X",
			Category: "pottery",
			Price:    decimal.NewFromInt(1),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
