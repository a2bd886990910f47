package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// DeleteOrderCommand removes an order permanently. Deletion is the only way
// an order leaves the store; no status transition destroys one.
type DeleteOrderCommand struct {
	OrderID string
}

func (c DeleteOrderCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return &domain.ValidationError{Field: "order_id", Reason: "is required"}
	}
	return nil
}

type DeleteOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewDeleteOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
) *DeleteOrderCommandHandler {
	return &DeleteOrderCommandHandler{
		repo:   repo,
		events: events,
	}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, cmd.OrderID); err != nil {
		return err
	}

	if err := h.events.PublishOrderDeleted(ctx, cmd.OrderID); err != nil {
		return fmt.Errorf("order deleted but failed to publish event: %w", err)
	}

	return nil
}
