//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dinhthuw/back1/internal/database"
	"github.com/dinhthuw/back1/internal/orders/adapters/postgres"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	projectRoot := findProjectRoot(t)
	migrationsPath := filepath.Join(projectRoot, "migrations")

	if err := database.RunMigrations(connStr, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func testOrder(id, email string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:      id,
		UserID:  "user-1",
		Name:    "Jane Doe",
		Email:   email,
		Phone:   "555-0100",
		Address: domain.Address{FullAddress: "1 Main St, Springfield"},
		Items: []domain.OrderItem{
			{ProductID: "book-1", Quantity: 2, Price: decimal.NewFromFloat(9.99)},
		},
		TotalPrice:    decimal.NewFromFloat(19.98),
		PaymentMethod: domain.PaymentCashOnDelivery,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.StatusPending,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := testOrder("test-order-1", "jane@example.com", time.Now().UTC())
	order.PaymentDetails = &domain.PaymentDetails{TransactionID: "txn-42"}

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("failed to retrieve order: %v", err)
	}

	if retrieved.ID != order.ID {
		t.Errorf("expected ID %s, got %s", order.ID, retrieved.ID)
	}
	if retrieved.Email != order.Email {
		t.Errorf("expected email %s, got %s", order.Email, retrieved.Email)
	}
	if !retrieved.TotalPrice.Equal(order.TotalPrice) {
		t.Errorf("expected total %s, got %s", order.TotalPrice, retrieved.TotalPrice)
	}
	if len(retrieved.Items) != 1 || retrieved.Items[0].ProductID != "book-1" {
		t.Errorf("expected items round-tripped, got %+v", retrieved.Items)
	}
	if retrieved.PaymentDetails == nil || retrieved.PaymentDetails.TransactionID != "txn-42" {
		t.Errorf("expected payment details round-tripped, got %+v", retrieved.PaymentDetails)
	}
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)

	_, err := repo.GetByID(context.Background(), "nonexistent-id")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryList(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	base := time.Now().UTC()
	orders := []domain.Order{
		testOrder("order-1", "user1@example.com", base),
		testOrder("order-2", "user2@example.com", base.Add(time.Second)),
		testOrder("order-3", "user3@example.com", base.Add(2*time.Second)),
	}
	orders[1].Status = domain.StatusDelivered

	for _, order := range orders {
		if err := repo.Create(ctx, order); err != nil {
			t.Fatalf("failed to create order: %v", err)
		}
	}

	t.Run("list all orders newest first", func(t *testing.T) {
		result, err := repo.List(ctx, ports.ListFilter{})
		if err != nil {
			t.Fatalf("failed to list orders: %v", err)
		}

		if len(result) != 3 {
			t.Errorf("expected 3 orders, got %d", len(result))
		}
		if result[0].ID != "order-3" {
			t.Errorf("expected first order to be order-3 (newest), got %s", result[0].ID)
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		status := domain.StatusPending
		result, err := repo.List(ctx, ports.ListFilter{Status: &status})
		if err != nil {
			t.Fatalf("failed to list orders: %v", err)
		}

		if len(result) != 2 {
			t.Errorf("expected 2 pending orders, got %d", len(result))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := repo.List(ctx, ports.ListFilter{Page: 1, PageSize: 2})
		if err != nil {
			t.Fatalf("failed to list orders: %v", err)
		}
		if len(result) != 2 {
			t.Errorf("expected 2 orders (page 1), got %d", len(result))
		}

		result, err = repo.List(ctx, ports.ListFilter{Page: 2, PageSize: 2})
		if err != nil {
			t.Fatalf("failed to list orders: %v", err)
		}
		if len(result) != 1 {
			t.Errorf("expected 1 order (page 2), got %d", len(result))
		}
	})
}

func TestRepositoryListByEmail(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, spec := range []struct {
		id    string
		email string
	}{
		{"order-1", "jane@example.com"},
		{"order-2", "john@example.com"},
		{"order-3", "jane@example.com"},
	} {
		if err := repo.Create(ctx, testOrder(spec.id, spec.email, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("failed to create order: %v", err)
		}
	}

	result, err := repo.ListByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("failed to list orders by email: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(result))
	}
	if result[0].ID != "order-3" || result[1].ID != "order-1" {
		t.Errorf("expected newest first, got %s, %s", result[0].ID, result[1].ID)
	}
}

func TestRepositoryUpdateStatus(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := testOrder("test-order-update", "jane@example.com", time.Now().UTC().Add(-time.Minute))
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, order.ID, domain.StatusProcessing)
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	if updated.Status != domain.StatusProcessing {
		t.Errorf("expected status processing, got %s", updated.Status)
	}
	if !updated.UpdatedAt.After(order.UpdatedAt) {
		t.Error("expected updated_at to advance")
	}

	_, err = repo.UpdateStatus(ctx, "nonexistent-id", domain.StatusDelivered)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryUpdatePayment(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := testOrder("test-order-payment", "jane@example.com", time.Now().UTC())
	order.PaymentDetails = &domain.PaymentDetails{PaymentProof: "receipt.png"}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	t.Run("status change without details keeps existing details", func(t *testing.T) {
		updated, err := repo.UpdatePayment(ctx, order.ID, ports.PaymentUpdate{
			PaymentStatus: domain.PaymentFailed,
		})
		if err != nil {
			t.Fatalf("failed to update payment: %v", err)
		}
		if updated.PaymentStatus != domain.PaymentFailed {
			t.Errorf("expected failed, got %s", updated.PaymentStatus)
		}
		if updated.PaymentDetails == nil || updated.PaymentDetails.PaymentProof != "receipt.png" {
			t.Errorf("expected existing details preserved, got %+v", updated.PaymentDetails)
		}
	})

	t.Run("new details replace old wholesale", func(t *testing.T) {
		updated, err := repo.UpdatePayment(ctx, order.ID, ports.PaymentUpdate{
			PaymentStatus:  domain.PaymentPaid,
			PaymentDetails: &domain.PaymentDetails{TransactionID: "txn-99"},
		})
		if err != nil {
			t.Fatalf("failed to update payment: %v", err)
		}
		if updated.PaymentDetails == nil || updated.PaymentDetails.TransactionID != "txn-99" {
			t.Errorf("expected replaced details, got %+v", updated.PaymentDetails)
		}
		if updated.PaymentDetails != nil && updated.PaymentDetails.PaymentProof != "" {
			t.Errorf("expected old proof dropped, got %q", updated.PaymentDetails.PaymentProof)
		}
	})
}

func TestRepositoryDelete(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := testOrder("test-order-delete", "jane@example.com", time.Now().UTC())
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("failed to delete order: %v", err)
	}

	if _, err := repo.GetByID(ctx, order.ID); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, order.ID); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
