package persistence

import (
	"context"
	"testing"

	"github.com/craftshop/backend/internal/domain/order"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&order.Order{}, &order.OrderItem{})
	require.NoError(t, err)

	return db
}

func newTestOrder(t *testing.T, gatewayOrderID string, userID uuid.UUID) *order.Order {
	item, err := order.NewOrderItem(uuid.New(), "Clay Pot", decimal.NewFromInt(400), 2, "M", "")
	require.NoError(t, err)

	o, err := order.NewOrder(gatewayOrderID, "pay_"+gatewayOrderID, userID, decimal.NewFromInt(800), []order.OrderItem{item})
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_CreateIfAbsent(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("creates the order on first call", func(t *testing.T) {
		o := newTestOrder(t, "order_A1", uuid.New())

		created, err := repo.CreateIfAbsent(ctx, o)
		require.NoError(t, err)
		assert.Equal(t, o.ID, created.ID)

		found, err := repo.FindByGatewayOrderID(ctx, "order_A1")
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
		require.Len(t, found.Items, 1)
	})

	t.Run("returns the existing order on repeat settlement", func(t *testing.T) {
		userID := uuid.New()
		first := newTestOrder(t, "order_B2", userID)

		created, err := repo.CreateIfAbsent(ctx, first)
		require.NoError(t, err)

		replay := newTestOrder(t, "order_B2", userID)
		existing, err := repo.CreateIfAbsent(ctx, replay)
		require.NoError(t, err)

		assert.Equal(t, created.ID, existing.ID)
		assert.NotEqual(t, replay.ID, existing.ID)

		var count int64
		require.NoError(t, db.Model(&order.Order{}).Where("gateway_order_id = ?", "order_B2").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormOrderRepository_FindByUser(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("returns only the user's orders with items", func(t *testing.T) {
		userID := uuid.New()

		_, err := repo.CreateIfAbsent(ctx, newTestOrder(t, "order_C1", userID))
		require.NoError(t, err)
		_, err = repo.CreateIfAbsent(ctx, newTestOrder(t, "order_C2", userID))
		require.NoError(t, err)
		_, err = repo.CreateIfAbsent(ctx, newTestOrder(t, "order_C3", uuid.New()))
		require.NoError(t, err)

		orders, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		for _, o := range orders {
			assert.Equal(t, userID, o.UserID)
			assert.NotEmpty(t, o.Items)
		}
	})
}

func TestGormOrderRepository_Save(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("persists the delivered transition", func(t *testing.T) {
		o := newTestOrder(t, "order_D1", uuid.New())
		_, err := repo.CreateIfAbsent(ctx, o)
		require.NoError(t, err)

		require.NoError(t, o.MarkDelivered())
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusDelivered, found.Status)
		assert.NotNil(t, found.DeliveredAt)
	})

	t.Run("persists the rated flag on an item", func(t *testing.T) {
		o := newTestOrder(t, "order_D2", uuid.New())
		_, err := repo.CreateIfAbsent(ctx, o)
		require.NoError(t, err)

		require.NoError(t, o.MarkItemRated(o.Items[0].ID))
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.True(t, found.Items[0].IsRated)
	})
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("returns not found for unknown order", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
