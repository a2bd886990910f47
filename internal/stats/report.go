package stats

import (
	"github.com/shopspring/decimal"

	"github.com/dinhthuw/back1/internal/orders/app/queries"
	"github.com/dinhthuw/back1/internal/orders/domain"
)

// PaymentMethodGroup is the per-payment-method order count and revenue.
type PaymentMethodGroup struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Count         int64                `json:"count"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
}

// StatusGroup is the per-fulfillment-status order count.
type StatusGroup struct {
	Status domain.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// PaymentStatusGroup is the per-payment-status order count and revenue.
type PaymentStatusGroup struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Count         int64                `json:"count"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
}

// MonthlyBucket sums sales for one YYYY-MM creation month.
type MonthlyBucket struct {
	Month       string          `json:"month"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalOrders int64           `json:"total_orders"`
}

// Report is the merged admin statistics view. It is recomputed on every
// request and never persisted.
type Report struct {
	TotalOrders           int64                `json:"total_orders"`
	TotalSales            decimal.Decimal      `json:"total_sales"`
	OrdersByPaymentMethod []PaymentMethodGroup `json:"orders_by_payment_method"`
	OrdersByStatus        []StatusGroup        `json:"orders_by_status"`
	OrdersByPaymentStatus []PaymentStatusGroup `json:"orders_by_payment_status"`
	TrendingBooks         int64                `json:"trending_books"`
	TotalBooks            int64                `json:"total_books"`
	MonthlySales          []MonthlyBucket      `json:"monthly_sales"`
	RecentOrders          []queries.OrderView  `json:"recent_orders"`
}
