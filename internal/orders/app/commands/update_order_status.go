package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// UpdateOrderStatusCommand moves an order to the given fulfillment status.
// Any status may follow any other; transitions are not restricted.
type UpdateOrderStatusCommand struct {
	OrderID string
	Status  domain.OrderStatus
}

func (c UpdateOrderStatusCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return &domain.ValidationError{Field: "order_id", Reason: "is required"}
	}
	if !c.Status.Valid() {
		return &domain.ValidationError{Field: "status", Reason: "must be one of pending, processing, shipped, delivered, cancelled"}
	}
	return nil
}

type UpdateOrderStatusCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewUpdateOrderStatusCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{
		repo:   repo,
		events: events,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.UpdateStatus(ctx, cmd.OrderID, cmd.Status)
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderStatusChanged(ctx, order.ID, order.Status); err != nil {
		return order, fmt.Errorf("status updated but failed to publish event: %w", err)
	}

	return order, nil
}
