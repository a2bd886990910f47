package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

const orderColumns = `id, user_id, name, email, phone, full_address, items, total_price,
	payment_method, payment_status, payment_details, status, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	detailsJSON, err := marshalPaymentDetails(order.PaymentDetails)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.Name,
		order.Email,
		order.Phone,
		order.Address.FullAddress,
		itemsJSON,
		order.TotalPrice,
		order.PaymentMethod,
		order.PaymentStatus,
		detailsJSON,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	order, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	return &order, nil
}

func (r *Repository) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("query orders by email: %w", err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("scan orders by email: %w", err)
	}
	return orders, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var statusFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	// A nil limit becomes LIMIT NULL, returning every row.
	var limit *int
	offset := 0
	if filter.PageSize > 0 {
		pageSize := filter.PageSize
		limit = &pageSize
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset = (page - 1) * pageSize
	}

	rows, err := r.pool.Query(ctx, query, statusFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + orderColumns + `
	`

	rows, err := r.pool.Query(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	return &order, nil
}

func (r *Repository) UpdatePayment(ctx context.Context, id string, update ports.PaymentUpdate) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET payment_status = $1,
			payment_details = COALESCE($2, payment_details),
			updated_at = $3
		WHERE id = $4
		RETURNING ` + orderColumns + `
	`

	detailsJSON, err := marshalPaymentDetails(update.PaymentDetails)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, update.PaymentStatus, detailsJSON, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update order payment: %w", err)
	}

	order, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("update order payment: %w", err)
	}

	return &order, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func scanOrder(row pgx.CollectableRow) (domain.Order, error) {
	var (
		order       domain.Order
		itemsJSON   []byte
		detailsJSON []byte
	)

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Name,
		&order.Email,
		&order.Phone,
		&order.Address.FullAddress,
		&itemsJSON,
		&order.TotalPrice,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&detailsJSON,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return domain.Order{}, fmt.Errorf("unmarshal order items: %w", err)
	}

	if len(detailsJSON) > 0 {
		var details domain.PaymentDetails
		if err := json.Unmarshal(detailsJSON, &details); err != nil {
			return domain.Order{}, fmt.Errorf("unmarshal payment details: %w", err)
		}
		order.PaymentDetails = &details
	}

	return order, nil
}

func marshalPaymentDetails(details *domain.PaymentDetails) ([]byte, error) {
	if details == nil {
		return nil, nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal payment details: %w", err)
	}
	return data, nil
}
