package model

import (
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ============ DTOs ============

// positiveInt accepts unsigned base-10 integers with value >= 1,
// leading zeros allowed, capped at nine significant digits so the value
// always fits in an int.
var positiveInt = regexp.MustCompile(`^0*[1-9][0-9]{0,8}$`)

// ListBooksRequest - raw query parameters of GET /books/.
// Filter values stay as the comma-separated strings the client sent;
// BuildFilter tokenizes them. Page and PageSize stay as strings so that
// "absent" and "invalid" remain distinguishable.
type ListBooksRequest struct {
	GutenbergIDs string `form:"gutenberg_id"`
	Languages    string `form:"language"`
	MimeTypes    string `form:"mime_type"`
	Topics       string `form:"topic"`
	Authors      string `form:"author"`
	Titles       string `form:"title"`
	Page         string `form:"page"`
	PageSize     string `form:"page_size"`

	// RequestURL is the absolute URL of the incoming request, used to
	// derive the next/previous page links.
	RequestURL *url.URL `form:"-"`
}

func (r ListBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page,
			validation.Match(positiveInt).Error("page must be a positive integer"),
		),
		validation.Field(&r.PageSize,
			validation.Match(positiveInt).Error("page_size must be a positive integer"),
		),
	)
}

// BookFilter - tokenized filter handed to the repository. Every slice
// is optional; an empty slice imposes no constraint for that category.
type BookFilter struct {
	GutenbergIDs []int
	Languages    []string
	MimeTypes    []string
	Topics       []string
	Authors      []string
	Titles       []string

	Limit  int
	Offset int
}

// Applied lists the filter categories that carry at least one token,
// for request logging.
func (f *BookFilter) Applied() []string {
	var names []string
	if len(f.GutenbergIDs) > 0 {
		names = append(names, "gutenberg_id")
	}
	if len(f.Languages) > 0 {
		names = append(names, "language")
	}
	if len(f.MimeTypes) > 0 {
		names = append(names, "mime_type")
	}
	if len(f.Topics) > 0 {
		names = append(names, "topic")
	}
	if len(f.Authors) > 0 {
		names = append(names, "author")
	}
	if len(f.Titles) > 0 {
		names = append(names, "title")
	}
	return names
}

// AuthorResponse - wire shape of one author
type AuthorResponse struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

type LanguageResponse struct {
	Code string `json:"code"`
}

type SubjectResponse struct {
	Name string `json:"name"`
}

type BookshelfResponse struct {
	Name string `json:"name"`
}

type FormatResponse struct {
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// BookResponse - wire shape of one book. media_type is deliberately
// not part of the projection.
type BookResponse struct {
	ID            int64               `json:"id"`
	Title         *string             `json:"title"`
	GutenbergID   int                 `json:"gutenberg_id"`
	DownloadCount *int                `json:"download_count"`
	Authors       []AuthorResponse    `json:"authors"`
	Languages     []LanguageResponse  `json:"languages"`
	Subjects      []SubjectResponse   `json:"subjects"`
	Bookshelves   []BookshelfResponse `json:"bookshelves"`
	Formats       []FormatResponse    `json:"formats"`
}

// BookListResponse - envelope of GET /books/. Count is the number of
// items on this page; CountTotal the number of distinct matches overall.
type BookListResponse struct {
	Count      int            `json:"count"`
	CountTotal int            `json:"count_total"`
	Next       *string        `json:"next"`
	Previous   *string        `json:"previous"`
	Results    []BookResponse `json:"results"`
}
