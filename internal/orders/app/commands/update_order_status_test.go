package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dinhthuw/back1/internal/orders/adapters/memory"
	"github.com/dinhthuw/back1/internal/orders/app/commands"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("updates to any valid status and publishes event", func(t *testing.T) {
		var publishedStatus domain.OrderStatus
		events := &mockEventBus{
			publishOrderStatusChangedFn: func(_ context.Context, _ string, status domain.OrderStatus) error {
				publishedStatus = status
				return nil
			},
		}
		handler := commands.NewUpdateOrderStatusCommandHandler(&mockRepository{}, events)

		// Delivered straight back to pending is allowed.
		order, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID: "order-1",
			Status:  domain.StatusPending,
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.Status != domain.StatusPending {
			t.Errorf("expected status pending, got %s", order.Status)
		}
		if publishedStatus != domain.StatusPending {
			t.Errorf("expected published status pending, got %s", publishedStatus)
		}
	})

	t.Run("applying the same status twice yields the same final state", func(t *testing.T) {
		repo := memory.NewRepository()
		seedStoredOrder(t, repo, "order-1")
		handler := commands.NewUpdateOrderStatusCommandHandler(repo, &mockEventBus{})

		first, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID: "order-1",
			Status:  domain.StatusShipped,
		})
		if err != nil {
			t.Fatalf("first update failed: %v", err)
		}

		second, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID: "order-1",
			Status:  domain.StatusShipped,
		})
		if err != nil {
			t.Fatalf("repeated update failed: %v", err)
		}
		if second.Status != first.Status {
			t.Errorf("expected same status after repeat, got %s then %s", first.Status, second.Status)
		}

		stored, err := repo.GetByID(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("load stored order: %v", err)
		}
		if stored.Status != domain.StatusShipped {
			t.Errorf("expected stored status shipped, got %s", stored.Status)
		}
	})

	t.Run("rejects unknown status before touching the store", func(t *testing.T) {
		repo := &mockRepository{
			updateStatusFn: func(context.Context, string, domain.OrderStatus) (*domain.Order, error) {
				t.Error("repository should not be called for invalid status")
				return nil, nil
			},
		}
		handler := commands.NewUpdateOrderStatusCommandHandler(repo, &mockEventBus{})

		_, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID: "order-1",
			Status:  "archived",
		})

		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected validation error, got: %v", err)
		}
		if validationErr.Field != "status" {
			t.Errorf("expected status field, got %s", validationErr.Field)
		}
	})

	t.Run("rejects missing order id", func(t *testing.T) {
		handler := commands.NewUpdateOrderStatusCommandHandler(&mockRepository{}, &mockEventBus{})

		_, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			Status: domain.StatusShipped,
		})

		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected validation error, got: %v", err)
		}
	})

	t.Run("propagates not found from the store", func(t *testing.T) {
		repo := &mockRepository{
			updateStatusFn: func(context.Context, string, domain.OrderStatus) (*domain.Order, error) {
				return nil, ports.ErrNotFound
			},
		}
		handler := commands.NewUpdateOrderStatusCommandHandler(repo, &mockEventBus{})

		_, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID: "missing",
			Status:  domain.StatusShipped,
		})
		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("returns order even when event publishing fails", func(t *testing.T) {
		eventErr := errors.New("kafka unavailable")
		events := &mockEventBus{
			publishOrderStatusChangedFn: func(context.Context, string, domain.OrderStatus) error {
				return eventErr
			},
		}
		handler := commands.NewUpdateOrderStatusCommandHandler(&mockRepository{}, events)

		order, err := handler.Handle(context.Background(), commands.UpdateOrderStatusCommand{
			OrderID: "order-1",
			Status:  domain.StatusDelivered,
		})
		if !errors.Is(err, eventErr) {
			t.Errorf("expected error to wrap event bus error, got: %v", err)
		}
		if order == nil {
			t.Fatal("expected order to be returned even on event bus error")
		}
	})
}
