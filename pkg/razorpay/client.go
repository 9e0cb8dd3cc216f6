package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"interview-booking/pkg/utils"

	"go.uber.org/zap"
)

// Order is an externally-created payment order.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client talks to the Razorpay Orders API with basic auth.
type Client struct {
	keyID   string
	secret  string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(config utils.PaymentConfig, log *zap.Logger) *Client {
	return &Client{
		keyID:   config.RazorpayKeyID,
		secret:  config.RazorpaySecret,
		baseURL: config.BaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log.With(zap.String("service", "razorpay")),
	}
}

// CreateOrder creates a payment order. Amount is in minor currency units
// (paise), as the gateway requires.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Failed to call orders API", zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("Orders API returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("receipt", receipt),
		)
		return nil, fmt.Errorf("create order: gateway returned status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	c.log.Info("Payment order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
	)
	return &order, nil
}

// VerifySignature recomputes HMAC-SHA256(secret, orderID|paymentID) and
// compares it to the signature the client supplied. Comparison is
// constant-time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
