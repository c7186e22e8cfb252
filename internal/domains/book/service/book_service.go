package service

import (
	"context"
	"net/url"
	"strconv"

	"catalog-backend/internal/config"
	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/repository"
	"catalog-backend/pkg/logger"
)

type BookService struct {
	repo       repository.RepositoryInterface
	pagination config.PaginationConfig
}

// NewService creates book service with its pagination limits
func NewService(repo repository.RepositoryInterface, pagination config.PaginationConfig) ServiceInterface {
	return &BookService{
		repo:       repo,
		pagination: pagination,
	}
}

// ListBooks returns one page of the filtered catalog.
func (s *BookService) ListBooks(ctx context.Context, req *model.ListBooksRequest) (*model.BookListResponse, error) {
	// 1. Resolve page / page_size against defaults and the cap
	page, pageSize, err := req.Pagination(s.pagination.DefaultPageSize, s.pagination.MaxPageSize)
	if err != nil {
		return nil, err
	}

	// 2. Translate raw parameters into the repository filter
	filter := model.BuildFilter(*req, pageSize, (page-1)*pageSize)
	if applied := filter.Applied(); len(applied) > 0 {
		logger.Debug("Listing books", map[string]interface{}{
			"filters":   applied,
			"page":      page,
			"page_size": pageSize,
		})
	}

	// 3. Fetch the page and the distinct total
	details, total, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]model.BookResponse, 0, len(details))
	for _, d := range details {
		results = append(results, model.ToBookResponse(d))
	}

	// 4. Assemble the envelope. A page past the end still succeeds with
	// empty results and no next link.
	resp := &model.BookListResponse{
		Count:      len(results),
		CountTotal: total,
		Results:    results,
	}
	if page*pageSize < total {
		resp.Next = buildPageLink(req.RequestURL, page+1)
	}
	if page > 1 {
		resp.Previous = buildPageLink(req.RequestURL, page-1)
	}

	return resp, nil
}

// GetBookDetail returns one book by internal id.
func (s *BookService) GetBookDetail(ctx context.Context, id int64) (*model.BookResponse, error) {
	detail, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.ToBookResponse(*detail)
	return &resp, nil
}

// buildPageLink rebuilds the request URL pointing at the given page.
// Page 1 drops the page parameter, matching the canonical form of an
// unpaginated request.
func buildPageLink(u *url.URL, page int) *string {
	if u == nil {
		return nil
	}

	link := *u
	q := link.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	link.RawQuery = q.Encode()

	s := link.String()
	return &s
}
