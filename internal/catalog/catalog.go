package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Book is a read-only catalog record referenced by order lines. This service
// never writes catalog data; another system owns it.
type Book struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Trending bool            `json:"trending"`
}

// Repository exposes the catalog lookups the order core needs: batch
// resolution of referenced books and the counts used by admin statistics.
type Repository interface {
	GetByIDs(ctx context.Context, ids []string) ([]Book, error)
	CountAll(ctx context.Context) (int64, error)
	CountTrending(ctx context.Context) (int64, error)
}
