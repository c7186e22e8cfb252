package model

import (
	"strconv"
	"strings"
)

// splitTokens breaks a comma-separated parameter into trimmed tokens.
// Empty tokens from stray commas are dropped rather than matched.
func splitTokens(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// lowerTokens lowercases every token; language codes are matched
// exactly but case-normalized first.
func lowerTokens(tokens []string) []string {
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}

// parseIDTokens keeps only tokens that are plain digit strings and
// parses them. Anything else is skipped silently, never an error.
func parseIDTokens(s string) []int {
	var ids []int
	for _, tok := range splitTokens(s) {
		if !isDigits(tok) {
			continue
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// BuildFilter tokenizes the raw request parameters into a BookFilter.
// Pure function: the request is not modified.
func BuildFilter(req ListBooksRequest, limit, offset int) *BookFilter {
	return &BookFilter{
		GutenbergIDs: parseIDTokens(req.GutenbergIDs),
		Languages:    lowerTokens(splitTokens(req.Languages)),
		MimeTypes:    splitTokens(req.MimeTypes),
		Topics:       splitTokens(req.Topics),
		Authors:      splitTokens(req.Authors),
		Titles:       splitTokens(req.Titles),
		Limit:        limit,
		Offset:       offset,
	}
}

// Pagination resolves page and page_size against the configured
// defaults: absent values default, page_size above the cap clamps, and
// anything non-positive or non-numeric is rejected. Validate catches
// the same cases at the HTTP boundary; this guards direct callers.
func (r ListBooksRequest) Pagination(defaultSize, maxSize int) (int, int, error) {
	page := 1
	if r.Page != "" {
		p, err := strconv.Atoi(r.Page)
		if err != nil || p < 1 {
			return 0, 0, ErrInvalidPage
		}
		page = p
	}

	pageSize := defaultSize
	if r.PageSize != "" {
		s, err := strconv.Atoi(r.PageSize)
		if err != nil || s < 1 {
			return 0, 0, ErrInvalidPageSize
		}
		if s > maxSize {
			s = maxSize
		}
		pageSize = s
	}

	return page, pageSize, nil
}

// ToBookResponse projects an assembled BookDetail onto the wire shape.
// Related lists are always arrays, never null.
func ToBookResponse(d BookDetail) BookResponse {
	authors := make([]AuthorResponse, 0, len(d.Authors))
	for _, a := range d.Authors {
		authors = append(authors, AuthorResponse{
			Name:      a.Name,
			BirthYear: a.BirthYear,
			DeathYear: a.DeathYear,
		})
	}

	languages := make([]LanguageResponse, 0, len(d.Languages))
	for _, l := range d.Languages {
		languages = append(languages, LanguageResponse{Code: l.Code})
	}

	subjects := make([]SubjectResponse, 0, len(d.Subjects))
	for _, s := range d.Subjects {
		subjects = append(subjects, SubjectResponse{Name: s.Name})
	}

	bookshelves := make([]BookshelfResponse, 0, len(d.Bookshelves))
	for _, b := range d.Bookshelves {
		bookshelves = append(bookshelves, BookshelfResponse{Name: b.Name})
	}

	formats := make([]FormatResponse, 0, len(d.Formats))
	for _, f := range d.Formats {
		formats = append(formats, FormatResponse{
			MimeType: f.MimeType,
			URL:      f.URL,
		})
	}

	return BookResponse{
		ID:            d.ID,
		Title:         d.Title,
		GutenbergID:   d.GutenbergID,
		DownloadCount: d.DownloadCount,
		Authors:       authors,
		Languages:     languages,
		Subjects:      subjects,
		Bookshelves:   bookshelves,
		Formats:       formats,
	}
}
