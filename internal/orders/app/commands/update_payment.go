package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// UpdatePaymentCommand sets a new payment status and optionally replaces the
// payment details in full.
type UpdatePaymentCommand struct {
	OrderID        string
	PaymentStatus  domain.PaymentStatus
	PaymentDetails *domain.PaymentDetails
}

func (c UpdatePaymentCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return &domain.ValidationError{Field: "order_id", Reason: "is required"}
	}
	if !c.PaymentStatus.Valid() {
		return &domain.ValidationError{Field: "payment_status", Reason: "must be one of pending, paid, failed, refunded"}
	}
	return nil
}

type UpdatePaymentCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewUpdatePaymentCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
) *UpdatePaymentCommandHandler {
	return &UpdatePaymentCommandHandler{
		repo:   repo,
		events: events,
	}
}

func (h *UpdatePaymentCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.UpdatePayment(ctx, cmd.OrderID, ports.PaymentUpdate{
		PaymentStatus:  cmd.PaymentStatus,
		PaymentDetails: cmd.PaymentDetails,
	})
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishPaymentUpdated(ctx, order.ID, order.PaymentStatus); err != nil {
		return order, fmt.Errorf("payment updated but failed to publish event: %w", err)
	}

	return order, nil
}
