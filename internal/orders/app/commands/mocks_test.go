package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// seedStoredOrder writes a minimal pending order into a real repository for
// tests that verify final stored state.
func seedStoredOrder(t *testing.T, repo ports.OrderRepository, id string) {
	t.Helper()

	now := time.Now().UTC()
	err := repo.Create(context.Background(), domain.Order{
		ID:            id,
		UserID:        "user-1",
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "555-0100",
		Address:       domain.Address{FullAddress: "1 Main St"},
		Items:         []domain.OrderItem{{ProductID: "book-1", Quantity: 1, Price: decimal.NewFromInt(10)}},
		TotalPrice:    decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentCashOnDelivery,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("seed order %s: %v", id, err)
	}
}

type mockRepository struct {
	createFn        func(ctx context.Context, order domain.Order) error
	updateStatusFn  func(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	updatePaymentFn func(ctx context.Context, id string, update ports.PaymentUpdate) (*domain.Order, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (m *mockRepository) Create(ctx context.Context, order domain.Order) error {
	if m.createFn != nil {
		return m.createFn(ctx, order)
	}
	return nil
}

func (m *mockRepository) GetByID(context.Context, string) (*domain.Order, error) {
	return nil, ports.ErrNotFound
}

func (m *mockRepository) ListByEmail(context.Context, string) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) List(context.Context, ports.ListFilter) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return &domain.Order{ID: id, Status: status}, nil
}

func (m *mockRepository) UpdatePayment(ctx context.Context, id string, update ports.PaymentUpdate) (*domain.Order, error) {
	if m.updatePaymentFn != nil {
		return m.updatePaymentFn(ctx, id, update)
	}
	return &domain.Order{ID: id, PaymentStatus: update.PaymentStatus, PaymentDetails: update.PaymentDetails}, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockEventBus struct {
	publishOrderCreatedFn       func(ctx context.Context, orderID string) error
	publishOrderStatusChangedFn func(ctx context.Context, orderID string, status domain.OrderStatus) error
	publishPaymentUpdatedFn     func(ctx context.Context, orderID string, status domain.PaymentStatus) error
	publishOrderDeletedFn       func(ctx context.Context, orderID string) error
}

func (m *mockEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	if m.publishOrderCreatedFn != nil {
		return m.publishOrderCreatedFn(ctx, orderID)
	}
	return nil
}

func (m *mockEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if m.publishOrderStatusChangedFn != nil {
		return m.publishOrderStatusChangedFn(ctx, orderID, status)
	}
	return nil
}

func (m *mockEventBus) PublishPaymentUpdated(ctx context.Context, orderID string, status domain.PaymentStatus) error {
	if m.publishPaymentUpdatedFn != nil {
		return m.publishPaymentUpdatedFn(ctx, orderID, status)
	}
	return nil
}

func (m *mockEventBus) PublishOrderDeleted(ctx context.Context, orderID string) error {
	if m.publishOrderDeletedFn != nil {
		return m.publishOrderDeletedFn(ctx, orderID)
	}
	return nil
}
