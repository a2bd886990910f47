package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dinhthuw/back1/internal/kafka"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
	"github.com/dinhthuw/back1/internal/telemetry"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (b *ObservableEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	return b.publish(ctx, "order_created", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderCreated(ctx, orderID)
	})
}

func (b *ObservableEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return b.publish(ctx, "order_status_changed", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderStatusChanged(ctx, orderID, status)
	})
}

func (b *ObservableEventBus) PublishPaymentUpdated(ctx context.Context, orderID string, status domain.PaymentStatus) error {
	return b.publish(ctx, "payment_updated", orderID, func(ctx context.Context) error {
		return b.bus.PublishPaymentUpdated(ctx, orderID, status)
	})
}

func (b *ObservableEventBus) PublishOrderDeleted(ctx context.Context, orderID string) error {
	return b.publish(ctx, "order_deleted", orderID, func(ctx context.Context) error {
		return b.bus.PublishOrderDeleted(ctx, orderID)
	})
}

func (b *ObservableEventBus) publish(ctx context.Context, topic, orderID string, fn func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.Publish")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("event.topic", topic),
		attribute.String("order.id", orderID),
	)

	start := time.Now()
	err := fn(ctx)
	b.metrics.RecordPublish(ctx, topic, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
