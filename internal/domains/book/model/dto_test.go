package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooksRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		pageSize string
		wantErr  bool
	}{
		{name: "absent values pass"},
		{name: "valid values pass", page: "2", pageSize: "50"},
		{name: "oversized page size passes, clamped later", pageSize: "500"},
		{name: "zero page fails", page: "0", wantErr: true},
		{name: "negative page fails", page: "-1", wantErr: true},
		{name: "leading zeros pass", page: "007"},
		{name: "non-numeric page fails", page: "two", wantErr: true},
		{name: "decimal page fails", page: "1.5", wantErr: true},
		{name: "all zeros page fails", page: "000", wantErr: true},
		{name: "zero page size fails", pageSize: "0", wantErr: true},
		{name: "negative page size fails", pageSize: "-10", wantErr: true},
		{name: "non-numeric page size fails", pageSize: "big", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ListBooksRequest{Page: tt.page, PageSize: tt.pageSize}

			err := req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookFilterApplied(t *testing.T) {
	f := &BookFilter{
		Languages: []string{"en"},
		Authors:   []string{"twain"},
	}

	assert.Equal(t, []string{"language", "author"}, f.Applied())
}

// The list item shape is part of the HTTP contract: related collections
// are arrays even when empty, title and download_count may be null, and
// media_type is never exposed.
func TestBookResponseJSONShape(t *testing.T) {
	resp := ToBookResponse(BookDetail{
		Book: Book{ID: 7, GutenbergID: 11, MediaType: "Text"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"id":7`)
	assert.Contains(t, body, `"gutenberg_id":11`)
	assert.Contains(t, body, `"title":null`)
	assert.Contains(t, body, `"download_count":null`)
	assert.Contains(t, body, `"authors":[]`)
	assert.Contains(t, body, `"languages":[]`)
	assert.Contains(t, body, `"subjects":[]`)
	assert.Contains(t, body, `"bookshelves":[]`)
	assert.Contains(t, body, `"formats":[]`)
	assert.NotContains(t, body, "media_type")
}

func TestBookListResponseJSONShape(t *testing.T) {
	next := "http://localhost:8080/books/?page=2"
	resp := BookListResponse{
		Count:      1,
		CountTotal: 30,
		Next:       &next,
		Results:    []BookResponse{},
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"count":1`)
	assert.Contains(t, body, `"count_total":30`)
	assert.Contains(t, body, `"next":"http://localhost:8080/books/?page=2"`)
	assert.Contains(t, body, `"previous":null`)
	assert.Contains(t, body, `"results":[]`)
}
