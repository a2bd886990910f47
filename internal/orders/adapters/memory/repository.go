package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development and tests.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

// Create stores a new order instance.
func (r *Repository) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

// GetByID fetches a single order by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := order
	return &copy, nil
}

// ListByEmail returns the orders placed under an owner email, newest first.
func (r *Repository) ListByEmail(_ context.Context, email string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Order{}
	for _, order := range r.orders {
		if order.Email == email {
			result = append(result, order)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

// List returns orders respecting the provided filter, newest first. A zero
// filter returns everything; pagination applies only when PageSize is set.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Order{}
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		result = append(result, order)
	}
	sortNewestFirst(result)

	if filter.PageSize <= 0 {
		return result, nil
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * filter.PageSize
	if start >= len(result) {
		return []domain.Order{}, nil
	}
	end := start + filter.PageSize
	if end > len(result) {
		end = len(result)
	}

	slice := make([]domain.Order, end-start)
	copy(slice, result[start:end])
	return slice, nil
}

// UpdateStatus sets the status and updatedAt timestamp for an order.
func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	r.orders[id] = order

	copy := order
	return &copy, nil
}

// UpdatePayment sets the payment status and, when supplied, replaces the
// payment details.
func (r *Repository) UpdatePayment(_ context.Context, id string, update ports.PaymentUpdate) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	order.PaymentStatus = update.PaymentStatus
	if update.PaymentDetails != nil {
		details := *update.PaymentDetails
		order.PaymentDetails = &details
	}
	order.UpdatedAt = time.Now().UTC()
	r.orders[id] = order

	copy := order
	return &copy, nil
}

// Delete removes an order permanently.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func sortNewestFirst(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
