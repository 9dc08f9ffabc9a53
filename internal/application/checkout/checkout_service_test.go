package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/craftshop/backend/internal/domain/cart"
	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/checkout"
	"github.com/craftshop/backend/internal/domain/identity"
	"github.com/craftshop/backend/internal/domain/order"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCartRepository is a mock implementation of cart.CartRepository
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

// MockPaymentIntentRepository is a mock implementation of checkout.PaymentIntentRepository
type MockPaymentIntentRepository struct {
	mock.Mock
}

func (m *MockPaymentIntentRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*checkout.PaymentIntent, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) Save(ctx context.Context, intent *checkout.PaymentIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateIfAbsent(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Echo lets a test hand back the order it was called with.
	if fn, ok := args.Get(0).(func(*order.Order) *order.Order); ok {
		return fn(o), args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockPaymentGateway is a mock implementation of checkout.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, req *checkout.CreateOrderRequest) (*checkout.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CreateOrderResponse), args.Error(1)
}

func (m *MockPaymentGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	args := m.Called(gatewayOrderID, gatewayPaymentID, signature)
	return args.Error(0)
}

// captureNotifier records confirmation sends and signals when one arrives,
// since settlement mails on a detached goroutine
type captureNotifier struct {
	sent chan string
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{sent: make(chan string, 2)}
}

func (n *captureNotifier) SendOrderConfirmation(to, name string, o *order.Order) error {
	n.sent <- to
	return nil
}

type checkoutFixture struct {
	service     *CheckoutService
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	intentRepo  *MockPaymentIntentRepository
	orderRepo   *MockOrderRepository
	userRepo    *MockUserRepository
	gateway     *MockPaymentGateway
	notifier    *captureNotifier
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		intentRepo:  new(MockPaymentIntentRepository),
		orderRepo:   new(MockOrderRepository),
		userRepo:    new(MockUserRepository),
		gateway:     new(MockPaymentGateway),
		notifier:    newCaptureNotifier(),
	}
	f.service = NewCheckoutService(
		f.cartRepo,
		f.productRepo,
		f.intentRepo,
		f.orderRepo,
		f.userRepo,
		f.gateway,
		f.notifier,
		zap.NewNop(),
		"rzp_test_key",
		"orders@craftshop.example",
	)
	return f
}

func newLine(t *testing.T, userID uuid.UUID, name string, price int64, quantity int) *cart.CartItem {
	t.Helper()
	line, err := cart.NewCartItem(userID, uuid.New(), "", quantity, name, decimal.NewFromInt(price), "")
	require.NoError(t, err)
	return line
}

func TestCheckoutService_CreateIntent(t *testing.T) {
	t.Run("reprices the cart from the catalog and opens a gateway order", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		// Scarf snapshot is stale at 500; the catalog discounted it to 400.
		scarfLine := newLine(t, userID, "Scarf", 500, 2)
		potLine := newLine(t, userID, "Pot", 200, 1)

		scarf, err := catalog.NewProduct("Scarf", "", "textiles", decimal.NewFromInt(500), decimal.NewFromInt(400), 10)
		require.NoError(t, err)
		scarf.ID = scarfLine.ProductID
		pot, err := catalog.NewProduct("Pot", "", "pottery", decimal.NewFromInt(200), decimal.Zero, 10)
		require.NoError(t, err)
		pot.ID = potLine.ProductID

		f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{*scarfLine, *potLine}, nil)
		f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*scarf, *pot}, nil)
		f.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *checkout.CreateOrderRequest) bool {
			return req.AmountMinor == 100000 && req.Currency == "INR"
		})).Return(&checkout.CreateOrderResponse{
			GatewayOrderID: "order_test123",
			AmountMinor:    100000,
			Currency:       "INR",
			Status:         "created",
		}, nil)
		f.intentRepo.On("Save", mock.Anything, mock.MatchedBy(func(intent *checkout.PaymentIntent) bool {
			return intent.GatewayOrderID == "order_test123" &&
				intent.Amount.Equal(decimal.NewFromInt(1000)) &&
				len(intent.Items) == 2 &&
				intent.Items[0].Price.Equal(decimal.NewFromInt(400))
		})).Return(nil)

		resp, err := f.service.CreateIntent(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "order_test123", resp.GatewayOrderID)
		assert.Equal(t, int64(100000), resp.AmountMinor)
		assert.Equal(t, "rzp_test_key", resp.KeyID)
		f.gateway.AssertExpectations(t)
		f.intentRepo.AssertExpectations(t)
	})

	t.Run("falls back to the snapshot price when the product is gone", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()
		line := newLine(t, userID, "Retired Scarf", 350, 2)

		f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{*line}, nil)
		f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)
		f.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *checkout.CreateOrderRequest) bool {
			return req.AmountMinor == 70000
		})).Return(&checkout.CreateOrderResponse{GatewayOrderID: "order_gone", AmountMinor: 70000, Currency: "INR"}, nil)
		f.intentRepo.On("Save", mock.Anything, mock.AnythingOfType("*checkout.PaymentIntent")).Return(nil)

		_, err := f.service.CreateIntent(context.Background(), userID)

		require.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("rejects an empty cart before touching the gateway", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()

		f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{}, nil)

		_, err := f.service.CreateIntent(context.Background(), userID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_CART", domainErr.Code)
		f.gateway.AssertNotCalled(t, "CreateOrder")
	})
}

func TestCheckoutService_VerifyAndSettle(t *testing.T) {
	newPaidIntent := func(t *testing.T, userID uuid.UUID) *checkout.PaymentIntent {
		t.Helper()
		item, err := checkout.NewIntentItem(uuid.New(), "Scarf", decimal.NewFromInt(400), 2, "", "")
		require.NoError(t, err)
		intent, err := checkout.NewPaymentIntent("order_test123", userID, decimal.NewFromInt(800), "rcpt_1", []checkout.IntentItem{item})
		require.NoError(t, err)
		return intent
	}

	t.Run("rejects a tampered signature without touching any state", func(t *testing.T) {
		f := newCheckoutFixture()

		f.gateway.On("VerifySignature", "order_test123", "pay_1", "bad").Return(checkout.ErrInvalidSignature)

		_, err := f.service.VerifyAndSettle(context.Background(), uuid.New(), VerifyPaymentRequest{
			GatewayOrderID:   "order_test123",
			GatewayPaymentID: "pay_1",
			Signature:        "bad",
		})

		assert.ErrorIs(t, err, checkout.ErrInvalidSignature)
		f.intentRepo.AssertNotCalled(t, "Save")
		f.orderRepo.AssertNotCalled(t, "CreateIfAbsent")
		f.cartRepo.AssertNotCalled(t, "DeleteByUser")
	})

	t.Run("settles the intent into an order exactly once", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()
		intent := newPaidIntent(t, userID)

		buyer, err := identity.NewUser("Asha", "asha@example.com", "s3cret-pass")
		require.NoError(t, err)
		buyer.ID = userID

		f.gateway.On("VerifySignature", "order_test123", "pay_1", "sig").Return(nil)
		f.intentRepo.On("FindByGatewayOrderID", mock.Anything, "order_test123").Return(intent, nil)
		f.intentRepo.On("Save", mock.Anything, intent).Return(nil)
		f.orderRepo.On("FindByGatewayOrderID", mock.Anything, "order_test123").Return(nil, shared.ErrNotFound)
		f.orderRepo.On("CreateIfAbsent", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(func(o *order.Order) *order.Order { return o }, nil)
		f.productRepo.On("IncrementSoldCount", mock.Anything, intent.Items[0].ProductID, 2).Return(nil)
		f.cartRepo.On("DeleteByUser", mock.Anything, userID).Return(nil)
		f.userRepo.On("FindByID", mock.Anything, userID).Return(buyer, nil)

		resp, err := f.service.VerifyAndSettle(context.Background(), userID, VerifyPaymentRequest{
			GatewayOrderID:   "order_test123",
			GatewayPaymentID: "pay_1",
			Signature:        "sig",
		})

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(800)))
		assert.True(t, intent.IsPaid())

		// Buyer confirmation plus the copy to the shop's order inbox.
		recipients := make([]string, 0, 2)
		for len(recipients) < 2 {
			select {
			case to := <-f.notifier.sent:
				recipients = append(recipients, to)
			case <-time.After(2 * time.Second):
				t.Fatalf("expected 2 confirmation emails, got %d", len(recipients))
			}
		}
		assert.ElementsMatch(t, []string{"asha@example.com", "orders@craftshop.example"}, recipients)

		f.productRepo.AssertNumberOfCalls(t, "IncrementSoldCount", 1)
		f.cartRepo.AssertNumberOfCalls(t, "DeleteByUser", 1)
	})

	t.Run("settles from the intent snapshot when the cart was emptied after payment", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()
		intent := newPaidIntent(t, userID)

		buyer, err := identity.NewUser("Asha", "asha@example.com", "s3cret-pass")
		require.NoError(t, err)
		buyer.ID = userID

		f.gateway.On("VerifySignature", "order_test123", "pay_1", "sig").Return(nil)
		f.intentRepo.On("FindByGatewayOrderID", mock.Anything, "order_test123").Return(intent, nil)
		f.intentRepo.On("Save", mock.Anything, intent).Return(nil)
		f.orderRepo.On("FindByGatewayOrderID", mock.Anything, "order_test123").Return(nil, shared.ErrNotFound)
		f.orderRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return len(o.Items) == 1 &&
				o.Items[0].ProductID == intent.Items[0].ProductID &&
				o.Items[0].Quantity == 2 &&
				o.Items[0].Price.Equal(decimal.NewFromInt(400))
		})).Return(func(o *order.Order) *order.Order { return o }, nil)
		f.productRepo.On("IncrementSoldCount", mock.Anything, intent.Items[0].ProductID, 2).Return(nil)
		f.cartRepo.On("DeleteByUser", mock.Anything, userID).Return(nil)
		f.userRepo.On("FindByID", mock.Anything, userID).Return(buyer, nil)

		resp, err := f.service.VerifyAndSettle(context.Background(), userID, VerifyPaymentRequest{
			GatewayOrderID:   "order_test123",
			GatewayPaymentID: "pay_1",
			Signature:        "sig",
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Scarf", resp.Items[0].Name)
		// The live cart is never consulted; the paid snapshot is the order.
		f.cartRepo.AssertNotCalled(t, "FindByUser")
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("replaying the callback returns the existing order untouched", func(t *testing.T) {
		f := newCheckoutFixture()
		userID := uuid.New()
		intent := newPaidIntent(t, userID)
		require.NoError(t, intent.MarkPaid("pay_1"))

		item, err := order.NewOrderItem(uuid.New(), "Scarf", decimal.NewFromInt(400), 2, "", "")
		require.NoError(t, err)
		existing, err := order.NewOrder("order_test123", "pay_1", userID, decimal.NewFromInt(800), []order.OrderItem{item})
		require.NoError(t, err)

		f.gateway.On("VerifySignature", "order_test123", "pay_1", "sig").Return(nil)
		f.intentRepo.On("FindByGatewayOrderID", mock.Anything, "order_test123").Return(intent, nil)
		f.intentRepo.On("Save", mock.Anything, intent).Return(nil)
		f.orderRepo.On("FindByGatewayOrderID", mock.Anything, "order_test123").Return(existing, nil)

		resp, err := f.service.VerifyAndSettle(context.Background(), userID, VerifyPaymentRequest{
			GatewayOrderID:   "order_test123",
			GatewayPaymentID: "pay_1",
			Signature:        "sig",
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.OrderID)
		f.orderRepo.AssertNotCalled(t, "CreateIfAbsent")
		f.productRepo.AssertNotCalled(t, "IncrementSoldCount")
		f.cartRepo.AssertNotCalled(t, "DeleteByUser")
	})

	t.Run("refuses to settle another user's intent", func(t *testing.T) {
		f := newCheckoutFixture()
		owner := uuid.New()
		intent := newPaidIntent(t, owner)

		f.gateway.On("VerifySignature", "order_test123", "pay_1", "sig").Return(nil)
		f.intentRepo.On("FindByGatewayOrderID", mock.Anything, "order_test123").Return(intent, nil)

		_, err := f.service.VerifyAndSettle(context.Background(), uuid.New(), VerifyPaymentRequest{
			GatewayOrderID:   "order_test123",
			GatewayPaymentID: "pay_1",
			Signature:        "sig",
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.intentRepo.AssertNotCalled(t, "Save")
	})
}
