package ports

import (
	"context"

	"github.com/dinhthuw/back1/internal/orders/domain"
)

// EventBus defines the contract for publishing order lifecycle events.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderID string) error
	PublishOrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) error
	PublishPaymentUpdated(ctx context.Context, orderID string, status domain.PaymentStatus) error
	PublishOrderDeleted(ctx context.Context, orderID string) error
}
