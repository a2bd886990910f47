package kafka

import (
	"context"
	"log/slog"

	"github.com/dinhthuw/back1/internal/orders/domain"
)

// NoopEventBus logs events without sending them to Kafka. Useful for local dev before wiring Kafka.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID string) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID string, status domain.OrderStatus) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "status", status)
	return nil
}

func (n *NoopEventBus) PublishPaymentUpdated(_ context.Context, orderID string, status domain.PaymentStatus) error {
	slog.Debug("event::payment_updated", "order_id", orderID, "payment_status", status)
	return nil
}

func (n *NoopEventBus) PublishOrderDeleted(_ context.Context, orderID string) error {
	slog.Debug("event::order_deleted", "order_id", orderID)
	return nil
}
