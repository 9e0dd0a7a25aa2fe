// Package razorpay wraps the Razorpay SDK for order creation and checks payment signatures.
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	rzp "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured is returned when the key id or key secret is missing.
var ErrNotConfigured = errors.New("razorpay credentials are not configured")

// Order is the subset of a gateway order returned to the checkout page
type Order struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// OrderCreator abstracts the SDK call so tests can substitute it.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client represents a Razorpay API client
type Client struct {
	KeyID     string
	KeySecret string
	Currency  string
	MockAPI   bool
	orders    OrderCreator
	now       func() time.Time
}

// NewClient creates a new Razorpay client. With mockAPI set, orders are fabricated locally.
func NewClient(keyID, keySecret, currency string, mockAPI bool) *Client {
	if currency == "" {
		currency = "INR"
	}
	c := &Client{
		KeyID:     keyID,
		KeySecret: keySecret,
		Currency:  currency,
		MockAPI:   mockAPI,
		now:       time.Now,
	}
	if keyID != "" && keySecret != "" {
		c.orders = rzp.NewClient(keyID, keySecret).Order
	}
	return c
}

// WithOrderCreator replaces the SDK order resource.
func (c *Client) WithOrderCreator(orders OrderCreator) *Client {
	c.orders = orders
	return c
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// ToMinorUnits converts a rupee amount to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateOrder creates a captured order for amount (in rupees) with the given receipt.
func (c *Client) CreateOrder(amount float64, receipt string) (*Order, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if c.MockAPI {
		return c.mockCreateOrder(amount, receipt), nil
	}
	if c.orders == nil {
		return nil, ErrNotConfigured
	}

	data := map[string]interface{}{
		"amount":          ToMinorUnits(amount),
		"currency":        c.Currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	body, err := c.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return orderFromMap(body), nil
}

// mockCreateOrder fabricates an order for local runs
func (c *Client) mockCreateOrder(amount float64, receipt string) *Order {
	return &Order{
		ID:       "order_mock_" + uuid.NewString()[:14],
		Entity:   "order",
		Amount:   ToMinorUnits(amount),
		Currency: c.Currency,
		Receipt:  receipt,
		Status:   "created",
	}
}

// Receipt builds the receipt reference for a ticket order.
func (c *Client) Receipt(ticketNumber int) string {
	return fmt.Sprintf("ticket_%d_%d", ticketNumber, c.now().UnixMilli())
}

func orderFromMap(body map[string]interface{}) *Order {
	order := &Order{}
	order.ID, _ = body["id"].(string)
	order.Entity, _ = body["entity"].(string)
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)
	switch v := body["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}
	return order
}

// Signature computes the hex HMAC-SHA256 of "orderID|paymentID" keyed with secret.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the expected value exactly.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return Signature(secret, orderID, paymentID) == signature
}
