package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/craftshop/backend/internal/domain/checkout"
	"github.com/craftshop/backend/internal/infrastructure/config"
)

const razorpayOrdersPath = "/orders"

// RazorpayAdapter implements the PaymentGateway interface for Razorpay
type RazorpayAdapter struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewRazorpayAdapter creates a new Razorpay adapter
func NewRazorpayAdapter(cfg config.PaymentConfig) (*RazorpayAdapter, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay: key_id and key_secret are required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &RazorpayAdapter{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// razorpayOrderRequest is the wire format for opening an order
type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// razorpayOrderResponse is the wire format of a created order
type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// razorpayErrorResponse is the wire format of a gateway error
type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens a payment order in Razorpay
func (a *RazorpayAdapter) CreateOrder(ctx context.Context, req *checkout.CreateOrderRequest) (*checkout.CreateOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := razorpayOrderRequest{
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal request: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, razorpayOrdersPath, bodyBytes)
	if err != nil {
		return nil, err
	}

	var respData razorpayOrderResponse
	if err := json.Unmarshal(respBody, &respData); err != nil {
		return nil, fmt.Errorf("%w: %v", checkout.ErrGatewayInvalidResponse, err)
	}
	if respData.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", checkout.ErrGatewayInvalidResponse)
	}

	return &checkout.CreateOrderResponse{
		GatewayOrderID: respData.ID,
		AmountMinor:    respData.Amount,
		Currency:       respData.Currency,
		Status:         respData.Status,
		RawResponse:    string(respBody),
	}, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay computes over
// "orderID|paymentID" with the key secret. hmac.Equal keeps the comparison
// constant-time.
func (a *RazorpayAdapter) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return checkout.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(a.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return checkout.ErrInvalidSignature
	}
	return nil
}

// doRequest performs an authenticated HTTP request to the Razorpay API
func (a *RazorpayAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(a.keyID, a.keySecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", checkout.ErrGatewayRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp razorpayErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return nil, fmt.Errorf("%w: %s - %s", checkout.ErrGatewayRequestFailed, errResp.Error.Code, errResp.Error.Description)
		}
		return nil, fmt.Errorf("%w: HTTP %d", checkout.ErrGatewayRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

// Ensure RazorpayAdapter implements PaymentGateway interface
var _ checkout.PaymentGateway = (*RazorpayAdapter)(nil)
