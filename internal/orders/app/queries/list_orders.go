package queries

import (
	"context"

	"github.com/dinhthuw/back1/internal/catalog"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// ListOrdersQuery requests every order, newest first, optionally narrowed by
// status and paginated.
type ListOrdersQuery struct {
	Filter ports.ListFilter
}

// ListOrdersQueryHandler executes ListOrdersQuery.
type ListOrdersQueryHandler struct {
	repo  ports.OrderRepository
	books catalog.Repository
}

// NewListOrdersQueryHandler constructs a ListOrdersQueryHandler.
func NewListOrdersQueryHandler(repo ports.OrderRepository, books catalog.Repository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo, books: books}
}

// Handle lists orders and resolves their catalog references.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	orders, err := h.repo.List(ctx, query.Filter)
	if err != nil {
		return nil, err
	}
	return ResolveOrders(ctx, h.books, orders)
}
