package repository

import (
	"context"

	"catalog-backend/internal/domains/book/model"
)

// RepositoryInterface - data access for the book catalog. The store is
// read-only; both operations are side-effect free.
type RepositoryInterface interface {
	// ListBooks returns one page of distinct matching books with their
	// related rows, plus the total number of distinct matches.
	ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.BookDetail, int, error)

	// GetBookByID returns a single book with its related rows, or
	// model.ErrBookNotFound.
	GetBookByID(ctx context.Context, id int64) (*model.BookDetail, error)
}
