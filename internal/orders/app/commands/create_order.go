package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// CreateOrderCommand carries a validated order draft plus the identity of the
// authenticated principal placing it.
type CreateOrderCommand struct {
	UserID         string
	Name           string
	Email          string
	Phone          string
	FullAddress    string
	Items          []domain.OrderItem
	TotalPrice     decimal.Decimal
	PaymentMethod  domain.PaymentMethod
	PaymentDetails *domain.PaymentDetails
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

type CreateOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:   repo,
		events: events,
	}
}

// Handle merges the draft into a new order, defaulting the payment method to
// cash on delivery and deriving the initial payment status, then validates
// and persists it.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	method := cmd.PaymentMethod
	if method == "" {
		method = domain.PaymentCashOnDelivery
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:             uuid.New().String(),
		UserID:         cmd.UserID,
		Name:           cmd.Name,
		Email:          cmd.Email,
		Phone:          cmd.Phone,
		Address:        domain.Address{FullAddress: cmd.FullAddress},
		Items:          cmd.Items,
		TotalPrice:     cmd.TotalPrice,
		PaymentMethod:  method,
		PaymentStatus:  domain.DerivePaymentStatus(method, cmd.PaymentDetails),
		PaymentDetails: cmd.PaymentDetails,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		return &order, fmt.Errorf("order saved but failed to publish event: %w", err)
	}

	return &order, nil
}
