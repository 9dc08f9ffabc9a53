package cart

import (
	"context"
	"testing"

	"github.com/craftshop/backend/internal/domain/cart"
	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) Upsert(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Save(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
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

func newServiceUnderTest() (*CartService, *MockCartRepository, *MockProductRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	return NewCartService(cartRepo, productRepo), cartRepo, productRepo
}

func newSaleProduct(t *testing.T) *catalog.Product {
	p, err := catalog.NewProduct("Handwoven Scarf", "", "textiles", decimal.NewFromInt(500), decimal.NewFromInt(400), 10)
	require.NoError(t, err)
	return p
}

func TestCartService_AddItem(t *testing.T) {
	t.Run("snapshots the effective price on the line", func(t *testing.T) {
		service, cartRepo, productRepo := newServiceUnderTest()
		userID := uuid.New()
		product := newSaleProduct(t)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(item *cart.CartItem) bool {
			return item.Price.Equal(decimal.NewFromInt(400)) && item.Quantity == 2
		})).Return(nil)
		cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{}, nil)

		_, err := service.AddItem(context.Background(), userID, AddItemRequest{
			ProductID: product.ID,
			Size:      "M",
			Quantity:  2,
		})

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("rejects more units than are in stock", func(t *testing.T) {
		service, cartRepo, productRepo := newServiceUnderTest()
		product := newSaleProduct(t)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := service.AddItem(context.Background(), uuid.New(), AddItemRequest{
			ProductID: product.ID,
			Quantity:  11,
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		cartRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		service, _, productRepo := newServiceUnderTest()

		id := uuid.New()
		productRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.AddItem(context.Background(), uuid.New(), AddItemRequest{
			ProductID: id,
			Quantity:  1,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartService_GetCart(t *testing.T) {
	t.Run("computes line and cart totals", func(t *testing.T) {
		service, cartRepo, _ := newServiceUnderTest()
		userID := uuid.New()

		a, err := cart.NewCartItem(userID, uuid.New(), "M", 2, "Scarf", decimal.NewFromInt(400), "")
		require.NoError(t, err)
		b, err := cart.NewCartItem(userID, uuid.New(), "", 1, "Pot", decimal.NewFromInt(200), "")
		require.NoError(t, err)

		cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{*a, *b}, nil)

		resp, err := service.GetCart(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, 2, resp.ItemCount)
		assert.Equal(t, 3, resp.TotalUnits)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(1000)))
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	t.Run("refuses to touch another user's line", func(t *testing.T) {
		service, cartRepo, _ := newServiceUnderTest()

		owner := uuid.New()
		item, err := cart.NewCartItem(owner, uuid.New(), "M", 2, "Scarf", decimal.NewFromInt(400), "")
		require.NoError(t, err)

		cartRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		_, err = service.UpdateQuantity(context.Background(), uuid.New(), item.ID, UpdateQuantityRequest{
			Action: "increase",
			By:     1,
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		cartRepo.AssertNotCalled(t, "Save")
	})

	t.Run("steps by one when the body carries only the action", func(t *testing.T) {
		service, cartRepo, _ := newServiceUnderTest()

		userID := uuid.New()
		item, err := cart.NewCartItem(userID, uuid.New(), "M", 2, "Scarf", decimal.NewFromInt(400), "")
		require.NoError(t, err)

		cartRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		cartRepo.On("Save", mock.Anything, item).Return(nil)
		cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{*item}, nil)

		_, err = service.UpdateQuantity(context.Background(), userID, item.ID, UpdateQuantityRequest{
			Action: "increase",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("removes the line when decreased to zero", func(t *testing.T) {
		service, cartRepo, _ := newServiceUnderTest()

		userID := uuid.New()
		item, err := cart.NewCartItem(userID, uuid.New(), "M", 2, "Scarf", decimal.NewFromInt(400), "")
		require.NoError(t, err)

		cartRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		cartRepo.On("Delete", mock.Anything, item.ID).Return(nil)
		cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{}, nil)

		resp, err := service.UpdateQuantity(context.Background(), userID, item.ID, UpdateQuantityRequest{
			Action: "decrease",
			By:     2,
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		cartRepo.AssertExpectations(t)
	})

	t.Run("saves the line on a partial decrease", func(t *testing.T) {
		service, cartRepo, _ := newServiceUnderTest()

		userID := uuid.New()
		item, err := cart.NewCartItem(userID, uuid.New(), "M", 5, "Scarf", decimal.NewFromInt(400), "")
		require.NoError(t, err)

		cartRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		cartRepo.On("Save", mock.Anything, item).Return(nil)
		cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{*item}, nil)

		_, err = service.UpdateQuantity(context.Background(), userID, item.ID, UpdateQuantityRequest{
			Action: "decrease",
			By:     2,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)
		cartRepo.AssertNotCalled(t, "Delete")
	})
}

func TestCartService_Clear(t *testing.T) {
	t.Run("clears only the user's cart", func(t *testing.T) {
		service, cartRepo, _ := newServiceUnderTest()
		userID := uuid.New()

		cartRepo.On("DeleteByUser", mock.Anything, userID).Return(nil)

		err := service.Clear(context.Background(), userID)

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})
}
