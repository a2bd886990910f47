package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dinhthuw/back1/internal/orders/app/commands"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

func TestDeleteOrder(t *testing.T) {
	t.Run("deletes order and publishes event", func(t *testing.T) {
		var deletedID, publishedID string
		repo := &mockRepository{
			deleteFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}
		events := &mockEventBus{
			publishOrderDeletedFn: func(_ context.Context, orderID string) error {
				publishedID = orderID
				return nil
			},
		}
		handler := commands.NewDeleteOrderCommandHandler(repo, events)

		err := handler.Handle(context.Background(), commands.DeleteOrderCommand{OrderID: "order-1"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if deletedID != "order-1" || publishedID != "order-1" {
			t.Errorf("expected order-1 deleted and published, got %s / %s", deletedID, publishedID)
		}
	})

	t.Run("rejects missing order id", func(t *testing.T) {
		handler := commands.NewDeleteOrderCommandHandler(&mockRepository{}, &mockEventBus{})

		err := handler.Handle(context.Background(), commands.DeleteOrderCommand{})

		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected validation error, got: %v", err)
		}
	})

	t.Run("deleting twice surfaces not found", func(t *testing.T) {
		calls := 0
		repo := &mockRepository{
			deleteFn: func(context.Context, string) error {
				calls++
				if calls > 1 {
					return ports.ErrNotFound
				}
				return nil
			},
		}
		handler := commands.NewDeleteOrderCommandHandler(repo, &mockEventBus{})

		if err := handler.Handle(context.Background(), commands.DeleteOrderCommand{OrderID: "order-1"}); err != nil {
			t.Fatalf("expected first delete to succeed, got: %v", err)
		}
		err := handler.Handle(context.Background(), commands.DeleteOrderCommand{OrderID: "order-1"})
		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got: %v", err)
		}
	})
}
