package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinhthuw/back1/internal/catalog"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]catalog.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, price, trending
		FROM books
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Book, error) {
		var b catalog.Book
		err := row.Scan(&b.ID, &b.Title, &b.Price, &b.Trending)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}

	return books, nil
}

func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func (r *Repository) CountTrending(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE trending`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count trending books: %w", err)
	}
	return count, nil
}
