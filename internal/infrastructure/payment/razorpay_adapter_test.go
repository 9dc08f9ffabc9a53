package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craftshop/backend/internal/domain/checkout"
	"github.com/craftshop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, baseURL string) *RazorpayAdapter {
	adapter, err := NewRazorpayAdapter(config.PaymentConfig{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
		Currency:  "INR",
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	return adapter
}

func TestNewRazorpayAdapter(t *testing.T) {
	t.Run("rejects missing credentials", func(t *testing.T) {
		_, err := NewRazorpayAdapter(config.PaymentConfig{BaseURL: "https://api.example.com"})
		assert.Error(t, err)
	})
}

func TestRazorpayAdapter_CreateOrder(t *testing.T) {
	t.Run("creates an order with basic auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "test_secret", pass)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(100000), body["amount"])
			assert.Equal(t, "INR", body["currency"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"order_N1","amount":100000,"currency":"INR","receipt":"rcpt_1","status":"created"}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server.URL)

		resp, err := adapter.CreateOrder(context.Background(), &checkout.CreateOrderRequest{
			AmountMinor: 100000,
			Currency:    "INR",
			Receipt:     "rcpt_1",
		})

		require.NoError(t, err)
		assert.Equal(t, "order_N1", resp.GatewayOrderID)
		assert.Equal(t, int64(100000), resp.AmountMinor)
		assert.Equal(t, "created", resp.Status)
	})

	t.Run("rejects an invalid request before calling the gateway", func(t *testing.T) {
		adapter := newTestAdapter(t, "http://unreachable.invalid")

		_, err := adapter.CreateOrder(context.Background(), &checkout.CreateOrderRequest{
			AmountMinor: 0,
			Currency:    "INR",
			Receipt:     "rcpt_1",
		})

		assert.ErrorIs(t, err, checkout.ErrPaymentInvalidAmount)
	})

	t.Run("surfaces gateway error responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server.URL)

		_, err := adapter.CreateOrder(context.Background(), &checkout.CreateOrderRequest{
			AmountMinor: 100000,
			Currency:    "INR",
			Receipt:     "rcpt_1",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, checkout.ErrGatewayRequestFailed)
		assert.Contains(t, err.Error(), "BAD_REQUEST_ERROR")
	})

	t.Run("rejects a response without an order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server.URL)

		_, err := adapter.CreateOrder(context.Background(), &checkout.CreateOrderRequest{
			AmountMinor: 50000,
			Currency:    "INR",
			Receipt:     "rcpt_2",
		})

		assert.ErrorIs(t, err, checkout.ErrGatewayInvalidResponse)
	})
}

func TestRazorpayAdapter_VerifySignature(t *testing.T) {
	adapter := newTestAdapter(t, "http://localhost")

	sign := func(orderID, paymentID string) string {
		mac := hmac.New(sha256.New, []byte("test_secret"))
		mac.Write([]byte(orderID + "|" + paymentID))
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("accepts a valid signature", func(t *testing.T) {
		err := adapter.VerifySignature("order_N1", "pay_M1", sign("order_N1", "pay_M1"))
		assert.NoError(t, err)
	})

	t.Run("rejects a tampered signature", func(t *testing.T) {
		err := adapter.VerifySignature("order_N1", "pay_M1", sign("order_N1", "pay_M2"))
		assert.ErrorIs(t, err, checkout.ErrInvalidSignature)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		err := adapter.VerifySignature("", "pay_M1", sign("order_N1", "pay_M1"))
		assert.ErrorIs(t, err, checkout.ErrInvalidSignature)
	})
}
