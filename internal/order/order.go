package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing rules applied at checkout. Tax is rounded half-up to two
// decimals; shipping is waived above the free-shipping threshold unless the
// caller supplies an explicit override.
var (
	TaxRate               = decimal.RequireFromString("0.10")
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShippingFee       = decimal.NewFromInt(10)
)

// Order is created once at checkout. Identity and monetary fields are
// immutable afterwards; only status, payment status and their timestamps
// transition over time.
type Order struct {
	ID              int             `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          int             `json:"userId"`
	Status          Status          `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty"`
	PaymentIntentID *string         `json:"paymentIntentId,omitempty"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingName    string          `json:"shippingName"`
	ShippingPhone   string          `json:"shippingPhone,omitempty"`
	ShippingAddress string          `json:"shippingAddress"`
	Notes           *string         `json:"notes,omitempty"`
	Items           []Item          `json:"items,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
	ShippedAt       *string         `json:"shippedAt,omitempty"`
	DeliveredAt     *string         `json:"deliveredAt,omitempty"`
}

// Item is an immutable line snapshot captured at order creation so later
// product edits do not alter historical orders.
type Item struct {
	ID           int             `json:"orderItemId"`
	OrderID      int             `json:"orderId"`
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage *string         `json:"productImage,omitempty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// MarshalJSON renders the monetary fields with a fixed two-decimal
// scale; decimal's default String trims trailing zeros, which would turn
// 110.00 into "110" on the wire.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		SubTotal     string `json:"subTotal"`
		Tax          string `json:"tax"`
		ShippingCost string `json:"shippingCost"`
		TotalAmount  string `json:"totalAmount"`
	}{
		alias:        alias(o),
		SubTotal:     o.SubTotal.StringFixed(2),
		Tax:          o.Tax.StringFixed(2),
		ShippingCost: o.ShippingCost.StringFixed(2),
		TotalAmount:  o.TotalAmount.StringFixed(2),
	})
}

func (i Item) MarshalJSON() ([]byte, error) {
	type alias Item
	return json.Marshal(struct {
		alias
		UnitPrice string `json:"unitPrice"`
		LineTotal string `json:"lineTotal"`
	}{
		alias:     alias(i),
		UnitPrice: i.UnitPrice.StringFixed(2),
		LineTotal: i.LineTotal.StringFixed(2),
	})
}

// CheckoutInput carries the caller-supplied part of a checkout.
type CheckoutInput struct {
	ShippingName    string
	ShippingPhone   string
	ShippingAddress string
	PaymentMethod   *string
	Notes           *string
	// ShippingOverride replaces the computed shipping cost when set
	// (payment-confirmation variant).
	ShippingOverride *decimal.Decimal
}

// NewOrderNumber builds a globally unique order number from the current
// date and a random suffix.
func NewOrderNumber(now time.Time) string {
	return "ORD-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}
