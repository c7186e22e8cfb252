package service

import (
	"context"

	"catalog-backend/internal/domains/book/model"
)

// ServiceInterface - book catalog business logic
type ServiceInterface interface {
	// ListBooks resolves filters and pagination, then returns one page of
	// books wrapped in the list envelope with navigation links.
	ListBooks(ctx context.Context, req *model.ListBooksRequest) (*model.BookListResponse, error)

	// GetBookDetail returns a single book projection by internal id.
	GetBookDetail(ctx context.Context, id int64) (*model.BookResponse, error)
}
