package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/config"
	"catalog-backend/internal/domains/book/model"
)

type stubRepository struct {
	details    []model.BookDetail
	total      int
	err        error
	lastFilter *model.BookFilter

	detail    *model.BookDetail
	detailErr error
	lastID    int64
}

func (s *stubRepository) ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.BookDetail, int, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.details, s.total, nil
}

func (s *stubRepository) GetBookByID(ctx context.Context, id int64) (*model.BookDetail, error) {
	s.lastID = id
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

func testPagination() config.PaginationConfig {
	return config.PaginationConfig{DefaultPageSize: 25, MaxPageSize: 100}
}

func listURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func makeDetails(n int) []model.BookDetail {
	details := make([]model.BookDetail, 0, n)
	for i := 1; i <= n; i++ {
		count := 1000 - i
		details = append(details, model.BookDetail{
			Book: model.Book{ID: int64(i), GutenbergID: i, DownloadCount: &count},
		})
	}
	return details
}

func TestListBooks_Defaults(t *testing.T) {
	repo := &stubRepository{details: makeDetails(25), total: 60}
	svc := NewService(repo, testPagination())

	req := &model.ListBooksRequest{RequestURL: listURL(t, "http://api.example.com/books/")}

	resp, err := svc.ListBooks(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
	assert.Equal(t, 25, resp.Count)
	assert.Equal(t, 60, resp.CountTotal)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "http://api.example.com/books/?page=2", *resp.Next)
	assert.Nil(t, resp.Previous)
}

func TestListBooks_MiddlePage(t *testing.T) {
	repo := &stubRepository{details: makeDetails(25), total: 60}
	svc := NewService(repo, testPagination())

	req := &model.ListBooksRequest{
		Page:       "2",
		Authors:    "twain",
		RequestURL: listURL(t, "http://api.example.com/books/?author=twain&page=2"),
	}

	resp, err := svc.ListBooks(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastFilter.Offset)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "http://api.example.com/books/?author=twain&page=3", *resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "http://api.example.com/books/?author=twain", *resp.Previous)
}

func TestListBooks_LastPage(t *testing.T) {
	repo := &stubRepository{details: makeDetails(10), total: 60}
	svc := NewService(repo, testPagination())

	req := &model.ListBooksRequest{
		Page:       "3",
		RequestURL: listURL(t, "http://api.example.com/books/?page=3"),
	}

	resp, err := svc.ListBooks(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastFilter.Offset)
	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "http://api.example.com/books/?page=2", *resp.Previous)
}

func TestListBooks_PageSizeClamped(t *testing.T) {
	repo := &stubRepository{details: makeDetails(100), total: 250}
	svc := NewService(repo, testPagination())

	req := &model.ListBooksRequest{
		PageSize:   "500",
		RequestURL: listURL(t, "http://api.example.com/books/?page_size=500"),
	}

	resp, err := svc.ListBooks(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastFilter.Limit)
	assert.Equal(t, 100, resp.Count)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "http://api.example.com/books/?page=2&page_size=500", *resp.Next)
}

// A page past the end is not an error: empty results, next gone,
// previous still navigable.
func TestListBooks_BeyondLastPage(t *testing.T) {
	repo := &stubRepository{details: []model.BookDetail{}, total: 30}
	svc := NewService(repo, testPagination())

	req := &model.ListBooksRequest{
		Page:       "9",
		RequestURL: listURL(t, "http://api.example.com/books/?page=9"),
	}

	resp, err := svc.ListBooks(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 30, resp.CountTotal)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "http://api.example.com/books/?page=8", *resp.Previous)
}

func TestListBooks_NoResults(t *testing.T) {
	repo := &stubRepository{details: []model.BookDetail{}, total: 0}
	svc := NewService(repo, testPagination())

	req := &model.ListBooksRequest{
		Titles:     "no such book",
		RequestURL: listURL(t, "http://api.example.com/books/?title=no+such+book"),
	}

	resp, err := svc.ListBooks(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 0, resp.CountTotal)
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestListBooks_FilterTokens(t *testing.T) {
	repo := &stubRepository{details: []model.BookDetail{}, total: 0}
	svc := NewService(repo, testPagination())

	req := &model.ListBooksRequest{
		GutenbergIDs: "84,abc,1342",
		Languages:    "EN, fr",
		Topics:       "child,",
		Authors:      "twain",
	}

	_, err := svc.ListBooks(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int{84, 1342}, repo.lastFilter.GutenbergIDs)
	assert.Equal(t, []string{"en", "fr"}, repo.lastFilter.Languages)
	assert.Equal(t, []string{"child"}, repo.lastFilter.Topics)
	assert.Equal(t, []string{"twain"}, repo.lastFilter.Authors)
}

func TestListBooks_InvalidPage(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, testPagination())

	_, err := svc.ListBooks(context.Background(), &model.ListBooksRequest{Page: "zero"})

	assert.ErrorIs(t, err, model.ErrInvalidPage)
	assert.Nil(t, repo.lastFilter)
}

func TestListBooks_InvalidPageSize(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo, testPagination())

	_, err := svc.ListBooks(context.Background(), &model.ListBooksRequest{PageSize: "0"})

	assert.ErrorIs(t, err, model.ErrInvalidPageSize)
	assert.Nil(t, repo.lastFilter)
}

func TestListBooks_RepositoryError(t *testing.T) {
	repo := &stubRepository{err: errors.New("connection refused")}
	svc := NewService(repo, testPagination())

	_, err := svc.ListBooks(context.Background(), &model.ListBooksRequest{})

	assert.ErrorContains(t, err, "connection refused")
}

func TestGetBookDetail(t *testing.T) {
	title := "Adventures of Huckleberry Finn"
	repo := &stubRepository{
		detail: &model.BookDetail{
			Book:      model.Book{ID: 76, Title: &title, GutenbergID: 76},
			Languages: []model.Language{{Code: "en"}},
		},
	}
	svc := NewService(repo, testPagination())

	resp, err := svc.GetBookDetail(context.Background(), 76)

	require.NoError(t, err)
	assert.Equal(t, int64(76), repo.lastID)
	assert.Equal(t, int64(76), resp.ID)
	assert.Equal(t, &title, resp.Title)
	assert.Equal(t, []model.LanguageResponse{{Code: "en"}}, resp.Languages)
}

func TestGetBookDetail_NotFound(t *testing.T) {
	repo := &stubRepository{detailErr: model.ErrBookNotFound}
	svc := NewService(repo, testPagination())

	_, err := svc.GetBookDetail(context.Background(), 999999)

	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBuildPageLink(t *testing.T) {
	base := listURL(t, "http://localhost:8080/books/?language=en&page=5")

	next := buildPageLink(base, 6)
	require.NotNil(t, next)
	assert.Equal(t, "http://localhost:8080/books/?language=en&page=6", *next)

	first := buildPageLink(base, 1)
	require.NotNil(t, first)
	assert.Equal(t, "http://localhost:8080/books/?language=en", *first)

	// source URL must stay untouched
	assert.Equal(t, "language=en&page=5", base.RawQuery)

	assert.Nil(t, buildPageLink(nil, 2))
}
