package app

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/dinhthuw/back1/internal/catalog"
	"github.com/dinhthuw/back1/internal/orders/app/commands"
	"github.com/dinhthuw/back1/internal/orders/app/queries"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/metrics"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// Service bundles the order use cases for the HTTP layer.
type Service struct {
	createHandler        commands.CommandHandler
	updateStatusHandler  *commands.UpdateOrderStatusCommandHandler
	updatePaymentHandler *commands.UpdatePaymentCommandHandler
	deleteHandler        *commands.DeleteOrderCommandHandler
	getHandler           *queries.GetOrderQueryHandler
	listHandler          *queries.ListOrdersQueryHandler
	listByEmailHandler   *queries.ListOrdersByEmailQueryHandler
	books                catalog.Repository
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	books catalog.Repository,
	events ports.EventBus,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreHandler := commands.NewCreateOrderCommandHandler(repo, events)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, metrics)

	return &Service{
		createHandler:        observableHandler,
		updateStatusHandler:  commands.NewUpdateOrderStatusCommandHandler(repo, events),
		updatePaymentHandler: commands.NewUpdatePaymentCommandHandler(repo, events),
		deleteHandler:        commands.NewDeleteOrderCommandHandler(repo, events),
		getHandler:           queries.NewGetOrderQueryHandler(repo, books),
		listHandler:          queries.NewListOrdersQueryHandler(repo, books),
		listByEmailHandler:   queries.NewListOrdersByEmailQueryHandler(repo, books),
		books:                books,
	}
}

// CreateOrderInput captures the payload for creating an order.
type CreateOrderInput struct {
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	Address        domain.Address         `json:"address"`
	Items          []domain.OrderItem     `json:"items"`
	TotalPrice     decimal.Decimal        `json:"total_price"`
	PaymentMethod  domain.PaymentMethod   `json:"payment_method"`
	PaymentDetails *domain.PaymentDetails `json:"payment_details"`
}

// CreateOrder places an order on behalf of the authenticated principal and
// returns its read projection.
func (s *Service) CreateOrder(ctx context.Context, principalID string, input CreateOrderInput) (*queries.OrderView, error) {
	cmd := commands.CreateOrderCommand{
		UserID:         principalID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		FullAddress:    input.Address.FullAddress,
		Items:          input.Items,
		TotalPrice:     input.TotalPrice,
		PaymentMethod:  input.PaymentMethod,
		PaymentDetails: input.PaymentDetails,
	}
	order, err := s.createHandler.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, order)
}

// GetOrder retrieves a resolved order view by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*queries.OrderView, error) {
	return s.getHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns all orders, newest first, using a filter.
func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]queries.OrderView, error) {
	return s.listHandler.Handle(ctx, queries.ListOrdersQuery{Filter: filter})
}

// ListOrdersByEmail returns the orders placed under the given owner email.
func (s *Service) ListOrdersByEmail(ctx context.Context, email string) ([]queries.OrderView, error) {
	return s.listByEmailHandler.Handle(ctx, queries.ListOrdersByEmailQuery{Email: email})
}

// UpdateOrderStatus moves an order to a new fulfillment status.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*queries.OrderView, error) {
	order, err := s.updateStatusHandler.Handle(ctx, commands.UpdateOrderStatusCommand{
		OrderID: id,
		Status:  status,
	})
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, order)
}

// UpdatePayment sets a new payment status and optional payment details.
func (s *Service) UpdatePayment(ctx context.Context, id string, status domain.PaymentStatus, details *domain.PaymentDetails) (*queries.OrderView, error) {
	order, err := s.updatePaymentHandler.Handle(ctx, commands.UpdatePaymentCommand{
		OrderID:        id,
		PaymentStatus:  status,
		PaymentDetails: details,
	})
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, order)
}

// DeleteOrder removes an order permanently.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.deleteHandler.Handle(ctx, commands.DeleteOrderCommand{OrderID: id})
}

// resolveView projects a freshly written order the same way the read side
// does, so command responses carry resolved titles and the display total.
func (s *Service) resolveView(ctx context.Context, order *domain.Order) (*queries.OrderView, error) {
	views, err := queries.ResolveOrders(ctx, s.books, []domain.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
