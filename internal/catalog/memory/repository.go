package memory

import (
	"context"
	"sync"

	"github.com/dinhthuw/back1/internal/catalog"
)

// Repository serves catalog lookups from memory for local development and tests.
type Repository struct {
	mu    sync.RWMutex
	books map[string]catalog.Book
}

// NewRepository constructs a repository seeded with the given books.
func NewRepository(books ...catalog.Book) *Repository {
	r := &Repository{books: make(map[string]catalog.Book, len(books))}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

// GetByIDs returns the books matching any of the given ids. Unknown ids are
// silently skipped.
func (r *Repository) GetByIDs(_ context.Context, ids []string) ([]catalog.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []catalog.Book
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

// CountAll returns the catalog size.
func (r *Repository) CountAll(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.books)), nil
}

// CountTrending returns the number of books flagged trending.
func (r *Repository) CountTrending(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, b := range r.books {
		if b.Trending {
			count++
		}
	}
	return count, nil
}
