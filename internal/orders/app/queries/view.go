package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dinhthuw/back1/internal/catalog"
	"github.com/dinhthuw/back1/internal/orders/domain"
)

// ResolvedItem is an order line with the referenced book's display fields
// attached. Title stays empty when the book no longer exists in the catalog;
// the snapshot price always comes from the order itself.
type ResolvedItem struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderView is the read projection of an order: catalog references resolved,
// product ids derived from the line items, and the total rounded for display.
type OrderView struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	Address        domain.Address         `json:"address"`
	Items          []ResolvedItem         `json:"items"`
	ProductIDs     []string               `json:"product_ids"`
	TotalPrice     decimal.Decimal        `json:"total_price"`
	PaymentMethod  domain.PaymentMethod   `json:"payment_method"`
	PaymentStatus  domain.PaymentStatus   `json:"payment_status"`
	PaymentDetails *domain.PaymentDetails `json:"payment_details,omitempty"`
	Status         domain.OrderStatus     `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ResolveOrders builds read projections for a batch of orders. All referenced
// books are fetched in a single catalog lookup; references that no longer
// resolve are tolerated rather than failing the read.
func ResolveOrders(ctx context.Context, books catalog.Repository, orders []domain.Order) ([]OrderView, error) {
	idSet := make(map[string]struct{})
	var ids []string
	for _, order := range orders {
		for _, item := range order.Items {
			if _, seen := idSet[item.ProductID]; !seen {
				idSet[item.ProductID] = struct{}{}
				ids = append(ids, item.ProductID)
			}
		}
	}

	fetched, err := books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog references: %w", err)
	}

	byID := make(map[string]catalog.Book, len(fetched))
	for _, b := range fetched {
		byID[b.ID] = b
	}

	views := make([]OrderView, len(orders))
	for i, order := range orders {
		views[i] = newOrderView(order, byID)
	}
	return views, nil
}

func newOrderView(order domain.Order, books map[string]catalog.Book) OrderView {
	items := make([]ResolvedItem, len(order.Items))
	for i, item := range order.Items {
		resolved := ResolvedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if book, ok := books[item.ProductID]; ok {
			resolved.Title = book.Title
		}
		items[i] = resolved
	}

	return OrderView{
		ID:             order.ID,
		UserID:         order.UserID,
		Name:           order.Name,
		Email:          order.Email,
		Phone:          order.Phone,
		Address:        order.Address,
		Items:          items,
		ProductIDs:     order.ProductIDs(),
		TotalPrice:     order.DisplayTotal(),
		PaymentMethod:  order.PaymentMethod,
		PaymentStatus:  order.PaymentStatus,
		PaymentDetails: order.PaymentDetails,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}
