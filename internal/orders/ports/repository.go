package ports

import (
	"context"
	"errors"

	"github.com/dinhthuw/back1/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	UpdatePayment(ctx context.Context, id string, update PaymentUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// ListFilter narrows list queries by status and pagination. A zero filter
// returns every order, newest first.
type ListFilter struct {
	Status   *domain.OrderStatus
	Page     int
	PageSize int
}

// PaymentUpdate applies a new payment status and, when supplied, replaces the
// payment details wholesale.
type PaymentUpdate struct {
	PaymentStatus  domain.PaymentStatus
	PaymentDetails *domain.PaymentDetails
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
)
