package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftshop/backend/internal/domain/cart"
	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/checkout"
	"github.com/craftshop/backend/internal/domain/identity"
	"github.com/craftshop/backend/internal/domain/order"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderNotifier sends buyer-facing notifications about settled orders.
// The SMTP implementation lives in the infrastructure layer.
type OrderNotifier interface {
	SendOrderConfirmation(to, name string, o *order.Order) error
}

// CheckoutService orchestrates payment intents and settlement
type CheckoutService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	intentRepo  checkout.PaymentIntentRepository
	orderRepo   order.OrderRepository
	userRepo    identity.UserRepository
	gateway     checkout.PaymentGateway
	notifier    OrderNotifier
	logger      *zap.Logger
	keyID       string
	opsEmail    string
}

// NewCheckoutService creates a new CheckoutService. keyID is the public
// gateway key the frontend needs to open the checkout widget; opsEmail is the
// shop's order inbox, copied on every confirmation (empty disables the copy).
func NewCheckoutService(
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
	intentRepo checkout.PaymentIntentRepository,
	orderRepo order.OrderRepository,
	userRepo identity.UserRepository,
	gateway checkout.PaymentGateway,
	notifier OrderNotifier,
	logger *zap.Logger,
	keyID string,
	opsEmail string,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		intentRepo:  intentRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		notifier:    notifier,
		logger:      logger,
		keyID:       keyID,
		opsEmail:    opsEmail,
	}
}

// CreateIntent reprices the user's cart from the catalog, opens a gateway
// order for the total and records a payment intent keyed by the gateway's
// order ID. Cart snapshot prices are never trusted for charging; the catalog
// price wins, falling back to the snapshot only when the product has since
// disappeared. The repriced lines are frozen onto the intent so settlement
// charges exactly what the buyer saw, whatever happens to the cart meanwhile.
func (s *CheckoutService) CreateIntent(ctx context.Context, userID uuid.UUID) (*CreateIntentResponse, error) {
	lines, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	snapshot, total, err := s.repriceCart(ctx, userID, lines)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixNano())
	gatewayOrder, err := s.gateway.CreateOrder(ctx, &checkout.CreateOrderRequest{
		AmountMinor: checkout.ToMinorUnits(total),
		Currency:    checkout.DefaultCurrency,
		Receipt:     receipt,
		Notes:       map[string]string{"user_id": userID.String()},
	})
	if err != nil {
		return nil, err
	}

	intent, err := checkout.NewPaymentIntent(gatewayOrder.GatewayOrderID, userID, total, receipt, snapshot)
	if err != nil {
		return nil, err
	}
	if err := s.intentRepo.Save(ctx, intent); err != nil {
		return nil, err
	}

	return &CreateIntentResponse{
		GatewayOrderID: intent.GatewayOrderID,
		Amount:         intent.Amount,
		AmountMinor:    intent.AmountMinor,
		Currency:       intent.Currency,
		KeyID:          s.keyID,
		Receipt:        intent.Receipt,
	}, nil
}

// VerifyAndSettle validates the gateway's payment signature and settles the
// intent. Settlement is idempotent on the gateway order ID: replaying the
// same callback returns the already placed order without touching stock
// counters or the cart again.
func (s *CheckoutService) VerifyAndSettle(ctx context.Context, userID uuid.UUID, req VerifyPaymentRequest) (*SettlementResponse, error) {
	if err := s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature); err != nil {
		return nil, err
	}

	intent, err := s.intentRepo.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if !intent.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}

	if err := intent.MarkPaid(req.GatewayPaymentID); err != nil {
		return nil, err
	}
	if err := s.intentRepo.Save(ctx, intent); err != nil {
		return nil, err
	}

	if existing, err := s.orderRepo.FindByGatewayOrderID(ctx, req.GatewayOrderID); err == nil {
		response := ToSettlementResponse(existing)
		return &response, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// The order is built from the lines frozen at intent creation, never from
	// the live cart: the buyer paid for the snapshot, and the cart may have
	// been edited or emptied since.
	items := make([]order.OrderItem, 0, len(intent.Items))
	for i := range intent.Items {
		item, err := order.NewOrderItem(
			intent.Items[i].ProductID,
			intent.Items[i].Name,
			intent.Items[i].Price,
			intent.Items[i].Quantity,
			intent.Items[i].Size,
			intent.Items[i].ImageURL,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(req.GatewayOrderID, req.GatewayPaymentID, userID, intent.Amount, items)
	if err != nil {
		return nil, err
	}
	settled, err := s.orderRepo.CreateIfAbsent(ctx, o)
	if err != nil {
		return nil, err
	}

	// A concurrent settlement of the same callback may have won the insert.
	// Only the winner runs the post-settlement side effects.
	if settled.ID == o.ID {
		s.recordSales(ctx, settled)
		if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
			s.logger.Warn("failed to clear cart after settlement",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
		go s.sendConfirmation(settled)
	}

	response := ToSettlementResponse(settled)
	return &response, nil
}

// repriceCart builds the intent line snapshot from current catalog prices and
// returns it with the authoritative total
func (s *CheckoutService) repriceCart(ctx context.Context, userID uuid.UUID, lines []cart.CartItem) ([]checkout.IntentItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, len(lines))
	for i := range lines {
		ids[i] = lines[i].ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	snapshot := make([]checkout.IntentItem, 0, len(lines))
	total := decimal.Zero
	for i := range lines {
		price := lines[i].Price
		if product, ok := byID[lines[i].ProductID]; ok {
			price = product.EffectivePrice()
		} else {
			s.logger.Warn("cart line references a product no longer in the catalog, charging snapshot price",
				zap.String("user_id", userID.String()),
				zap.String("product_id", lines[i].ProductID.String()))
		}
		item, err := checkout.NewIntentItem(
			lines[i].ProductID,
			lines[i].Name,
			price,
			lines[i].Quantity,
			lines[i].Size,
			lines[i].ImageURL,
		)
		if err != nil {
			return nil, decimal.Zero, err
		}
		snapshot = append(snapshot, item)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
	}
	return snapshot, total, nil
}

// recordSales bumps per-product sold counters. Counter failures never undo a
// settled payment; they are logged and the order stands.
func (s *CheckoutService) recordSales(ctx context.Context, o *order.Order) {
	for i := range o.Items {
		if err := s.productRepo.IncrementSoldCount(ctx, o.Items[i].ProductID, o.Items[i].Quantity); err != nil {
			s.logger.Warn("failed to increment sold count",
				zap.String("product_id", o.Items[i].ProductID.String()),
				zap.Error(err))
		}
	}
}

// sendConfirmation mails the buyer and the shop's order inbox on a detached
// context so a slow SMTP server never blocks the settlement response
func (s *CheckoutService) sendConfirmation(o *order.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := s.userRepo.FindByID(ctx, o.UserID)
	if err != nil {
		s.logger.Warn("failed to load buyer for order confirmation",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return
	}
	if err := s.notifier.SendOrderConfirmation(user.Email, user.Name, o); err != nil {
		s.logger.Warn("failed to send order confirmation",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
	if s.opsEmail == "" {
		return
	}
	if err := s.notifier.SendOrderConfirmation(s.opsEmail, user.Name, o); err != nil {
		s.logger.Warn("failed to send order copy to the shop inbox",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
}
