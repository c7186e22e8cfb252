package model

// ============ ENTITIES ============
// The catalog schema is populated by an external import; this service
// only reads it. Row shapes mirror the books_* tables.

// Book - catalog row from books_book
type Book struct {
	ID            int64   `json:"id" db:"id"`
	Title         *string `json:"title" db:"title"`
	GutenbergID   int     `json:"gutenberg_id" db:"gutenberg_id"`
	MediaType     string  `json:"-" db:"media_type"`
	DownloadCount *int    `json:"download_count" db:"download_count"`
}

// Author - books_author row, reached through books_book_authors
type Author struct {
	Name      string `json:"name" db:"name"`
	BirthYear *int   `json:"birth_year" db:"birth_year"`
	DeathYear *int   `json:"death_year" db:"death_year"`
}

// Language - books_language row, reached through books_book_languages
type Language struct {
	Code string `json:"code" db:"code"`
}

// Subject - books_subject row, reached through books_book_subjects
type Subject struct {
	Name string `json:"name" db:"name"`
}

// Bookshelf - books_bookshelf row, reached through books_book_bookshelves
type Bookshelf struct {
	Name string `json:"name" db:"name"`
}

// Format - books_format row; each row belongs to exactly one book
type Format struct {
	MimeType string `json:"mime_type" db:"mime_type"`
	URL      string `json:"url" db:"url"`
}

// BookDetail - a book together with all of its related rows, as
// assembled by the repository.
type BookDetail struct {
	Book
	Authors     []Author
	Languages   []Language
	Subjects    []Subject
	Bookshelves []Bookshelf
	Formats     []Format
}
