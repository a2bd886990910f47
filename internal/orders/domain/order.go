package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus captures the fulfillment lifecycle of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known fulfillment states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnlineGateway  PaymentMethod = "online"
)

// Valid reports whether the payment method is supported.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentOnlineGateway
}

// PaymentStatus tracks payment settlement independently of fulfillment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether the payment status is one of the known states.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

// Address holds the delivery address snapshot captured at order time.
type Address struct {
	FullAddress string `json:"full_address"`
}

// OrderItem is a single line in an order. Price is a snapshot taken when the
// order was placed, not a live catalog lookup.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PaymentDetails carries optional settlement information supplied by the
// payment flow.
type PaymentDetails struct {
	TransactionID string    `json:"transaction_id,omitempty"`
	PaymentDate   time.Time `json:"payment_date,omitempty"`
	PaymentProof  string    `json:"payment_proof,omitempty"`
}

// Order represents a customer purchase managed by the system.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        Address         `json:"address"`
	Items          []OrderItem     `json:"items"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	PaymentDetails *PaymentDetails `json:"payment_details,omitempty"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ValidationError marks a payload that violates an order invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order: %s %s", e.Field, e.Reason)
}

// Validate ensures the order adheres to business constraints.
func (o Order) Validate() error {
	if strings.TrimSpace(o.UserID) == "" {
		return &ValidationError{Field: "user_id", Reason: "is required"}
	}
	if strings.TrimSpace(o.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(o.Email) == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if !strings.Contains(o.Email, "@") {
		return &ValidationError{Field: "email", Reason: "must be valid"}
	}
	if strings.TrimSpace(o.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "is required"}
	}
	if strings.TrimSpace(o.Address.FullAddress) == "" {
		return &ValidationError{Field: "address.full_address", Reason: "is required"}
	}
	if len(o.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "must not be empty"}
	}
	for i, item := range o.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].product_id", i), Reason: "is required"}
		}
		if item.Quantity < 1 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be at least 1"}
		}
		if item.Price.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].price", i), Reason: "must not be negative"}
		}
	}
	if o.TotalPrice.IsNegative() {
		return &ValidationError{Field: "total_price", Reason: "must not be negative"}
	}
	if !o.PaymentMethod.Valid() {
		return &ValidationError{Field: "payment_method", Reason: "must be one of cod, online"}
	}
	if !o.PaymentStatus.Valid() {
		return &ValidationError{Field: "payment_status", Reason: "must be one of pending, paid, failed, refunded"}
	}
	if !o.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be one of pending, processing, shipped, delivered, cancelled"}
	}
	return nil
}

// ProductIDs returns the catalog references of the order lines. The list is
// derived from Items on every call; it is never stored separately.
func (o Order) ProductIDs() []string {
	ids := make([]string, len(o.Items))
	for i, item := range o.Items {
		ids[i] = item.ProductID
	}
	return ids
}

// DisplayTotal returns the total rounded to the nearest whole unit. The
// stored total keeps its fractional part; rounding applies on read only.
func (o Order) DisplayTotal() decimal.Decimal {
	return o.TotalPrice.Round(0)
}

// DerivePaymentStatus computes the initial payment status at creation time.
// Cash on delivery always starts pending. An online payment counts as paid
// when the payload already carries a transaction id; no gateway verification
// sits behind this.
func DerivePaymentStatus(method PaymentMethod, details *PaymentDetails) PaymentStatus {
	if method == PaymentCashOnDelivery {
		return PaymentPending
	}
	if details != nil && strings.TrimSpace(details.TransactionID) != "" {
		return PaymentPaid
	}
	return PaymentPending
}
