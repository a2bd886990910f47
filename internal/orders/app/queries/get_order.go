package queries

import (
	"context"
	"strings"

	"github.com/dinhthuw/back1/internal/catalog"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// GetOrderQuery represents a request to retrieve an order by its ID.
type GetOrderQuery struct {
	OrderID string
}

// Validate ensures the query has valid parameters.
func (q GetOrderQuery) Validate() error {
	if strings.TrimSpace(q.OrderID) == "" {
		return &domain.ValidationError{Field: "order_id", Reason: "is required"}
	}
	return nil
}

// GetOrderQueryHandler executes GetOrderQuery and returns the resolved view.
type GetOrderQueryHandler struct {
	repo  ports.OrderRepository
	books catalog.Repository
}

// NewGetOrderQueryHandler constructs a GetOrderQueryHandler.
func NewGetOrderQueryHandler(repo ports.OrderRepository, books catalog.Repository) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo, books: books}
}

// Handle fetches the order and attaches catalog display fields.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, query.OrderID)
	if err != nil {
		return nil, err
	}

	views, err := ResolveOrders(ctx, h.books, []domain.Order{*order})
	if err != nil {
		return nil, err
	}

	return &views[0], nil
}
