package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines(t *testing.T) []IntentItem {
	t.Helper()
	item, err := NewIntentItem(uuid.New(), "Clay Vase", decimal.NewFromInt(500), 2, "M", "")
	require.NoError(t, err)
	return []IntentItem{item}
}

func TestNewPaymentIntent(t *testing.T) {
	userID := uuid.New()

	t.Run("creates intent with minor units", func(t *testing.T) {
		intent, err := NewPaymentIntent("order_abc123", userID, decimal.NewFromInt(1000), "rcpt_1", testLines(t))
		require.NoError(t, err)

		assert.Equal(t, "order_abc123", intent.GatewayOrderID)
		assert.Equal(t, userID, intent.UserID)
		assert.Equal(t, int64(100000), intent.AmountMinor)
		assert.Equal(t, "INR", intent.Currency)
		assert.Equal(t, IntentStatusCreated, intent.Status)
		assert.False(t, intent.IsPaid())
		assert.Nil(t, intent.PaidAt)
	})

	t.Run("freezes cart lines onto the intent", func(t *testing.T) {
		intent, err := NewPaymentIntent("order_abc123", userID, decimal.NewFromInt(1000), "rcpt_1", testLines(t))
		require.NoError(t, err)

		require.Len(t, intent.Items, 1)
		assert.Equal(t, intent.ID, intent.Items[0].IntentID)
		assert.Equal(t, "Clay Vase", intent.Items[0].Name)
		assert.Equal(t, 2, intent.Items[0].Quantity)
	})

	t.Run("publishes PaymentIntentCreated event", func(t *testing.T) {
		intent, err := NewPaymentIntent("order_abc123", userID, decimal.NewFromInt(1000), "rcpt_1", testLines(t))
		require.NoError(t, err)

		events := intent.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentIntentCreated, events[0].EventType())
	})

	t.Run("fails with empty gateway order id", func(t *testing.T) {
		_, err := NewPaymentIntent("", userID, decimal.NewFromInt(1000), "rcpt_1", testLines(t))
		require.Error(t, err)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		_, err := NewPaymentIntent("order_abc123", userID, decimal.Zero, "rcpt_1", testLines(t))
		require.Error(t, err)
	})

	t.Run("fails without cart lines", func(t *testing.T) {
		_, err := NewPaymentIntent("order_abc123", userID, decimal.NewFromInt(1000), "rcpt_1", nil)
		require.Error(t, err)
	})
}

func TestNewIntentItem(t *testing.T) {
	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewIntentItem(uuid.New(), "Clay Vase", decimal.NewFromInt(500), 0, "", "")
		require.Error(t, err)
	})

	t.Run("rejects nil product id", func(t *testing.T) {
		_, err := NewIntentItem(uuid.Nil, "Clay Vase", decimal.NewFromInt(500), 1, "", "")
		require.Error(t, err)
	})
}

func TestPaymentIntent_MarkPaid(t *testing.T) {
	t.Run("transitions to paid once", func(t *testing.T) {
		intent, err := NewPaymentIntent("order_abc123", uuid.New(), decimal.NewFromInt(1000), "rcpt_1", testLines(t))
		require.NoError(t, err)
		intent.ClearDomainEvents()

		require.NoError(t, intent.MarkPaid("pay_xyz789"))

		assert.True(t, intent.IsPaid())
		assert.Equal(t, "pay_xyz789", intent.GatewayPaymentID)
		require.NotNil(t, intent.PaidAt)

		events := intent.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentIntentPaid, events[0].EventType())
	})

	t.Run("is idempotent on repeat settlement", func(t *testing.T) {
		intent, err := NewPaymentIntent("order_abc123", uuid.New(), decimal.NewFromInt(1000), "rcpt_1", testLines(t))
		require.NoError(t, err)
		require.NoError(t, intent.MarkPaid("pay_xyz789"))
		firstPaidAt := *intent.PaidAt
		intent.ClearDomainEvents()

		require.NoError(t, intent.MarkPaid("pay_other"))

		assert.Equal(t, "pay_xyz789", intent.GatewayPaymentID)
		assert.Equal(t, firstPaidAt, *intent.PaidAt)
		assert.Empty(t, intent.GetDomainEvents())
	})

	t.Run("rejects empty payment id", func(t *testing.T) {
		intent, err := NewPaymentIntent("order_abc123", uuid.New(), decimal.NewFromInt(1000), "rcpt_1", testLines(t))
		require.NoError(t, err)

		require.Error(t, intent.MarkPaid(""))
	})
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(110000), ToMinorUnits(decimal.NewFromInt(1100)))
	assert.Equal(t, int64(49950), ToMinorUnits(decimal.RequireFromString("499.50")))
	assert.Equal(t, int64(0), ToMinorUnits(decimal.Zero))
}
