package queries

import (
	"context"
	"strings"

	"github.com/dinhthuw/back1/internal/catalog"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// ListOrdersByEmailQuery requests the orders placed under an owner email,
// newest first. An unknown email yields an empty list, not an error.
type ListOrdersByEmailQuery struct {
	Email string
}

// Validate ensures the query has valid parameters.
func (q ListOrdersByEmailQuery) Validate() error {
	if strings.TrimSpace(q.Email) == "" {
		return &domain.ValidationError{Field: "email", Reason: "is required"}
	}
	return nil
}

// ListOrdersByEmailQueryHandler executes ListOrdersByEmailQuery.
type ListOrdersByEmailQueryHandler struct {
	repo  ports.OrderRepository
	books catalog.Repository
}

// NewListOrdersByEmailQueryHandler constructs a ListOrdersByEmailQueryHandler.
func NewListOrdersByEmailQueryHandler(repo ports.OrderRepository, books catalog.Repository) *ListOrdersByEmailQueryHandler {
	return &ListOrdersByEmailQueryHandler{repo: repo, books: books}
}

// Handle lists the owner's orders and resolves their catalog references.
func (h *ListOrdersByEmailQueryHandler) Handle(ctx context.Context, query ListOrdersByEmailQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.ListByEmail(ctx, query.Email)
	if err != nil {
		return nil, err
	}
	return ResolveOrders(ctx, h.books, orders)
}
