package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/utils"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates PostgreSQL-backed book repository
func NewPostgresRepository(db *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{db: db}
}

// ListBooks returns one page of matching books plus the total match count.
// The count runs against the same WHERE clause as the page query, so the
// two can never disagree.
func (r *postgresRepository) ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.BookDetail, int, error) {
	whereClause, args := r.buildWhereClause(filter)

	total, err := r.getBookCount(ctx, whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.BookDetail{}, 0, nil
	}

	query := r.buildListBooksQuery(whereClause, len(args)+1)
	args = append(args, filter.Limit, filter.Offset)

	books, err := r.executeListQuery(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	details, err := r.loadRelated(ctx, books)
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

// GetBookByID fetches a single book with all related rows.
func (r *postgresRepository) GetBookByID(ctx context.Context, id int64) (*model.BookDetail, error) {
	query := `
		SELECT b.id, b.title, b.gutenberg_id, b.media_type, b.download_count
		FROM books_book b
		WHERE b.id = $1`

	var book model.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.GutenbergID, &book.MediaType, &book.DownloadCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}

	details, err := r.loadRelated(ctx, []model.Book{book})
	if err != nil {
		return nil, err
	}

	return &details[0], nil
}

// buildWhereClause translates the filter into SQL conditions. Relation
// filters use EXISTS sub-selects against books_book, so a book joined to
// several matching rows still counts once and no DISTINCT is needed.
func (r *postgresRepository) buildWhereClause(filter *model.BookFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if len(filter.GutenbergIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("b.gutenberg_id = ANY($%d)", argIndex))
		args = append(args, filter.GutenbergIDs)
		argIndex++
	}

	if len(filter.Languages) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM books_book_languages bl JOIN books_language l ON l.id = bl.language_id WHERE bl.book_id = b.id AND l.code = ANY($%d))",
			argIndex))
		args = append(args, filter.Languages)
		argIndex++
	}

	if len(filter.MimeTypes) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM books_format f WHERE f.book_id = b.id AND f.mime_type = ANY($%d))",
			argIndex))
		args = append(args, filter.MimeTypes)
		argIndex++
	}

	if len(filter.Topics) > 0 {
		// One topic token may hit either a subject or a bookshelf, so both
		// sub-selects share the same pattern argument.
		conditions = append(conditions, fmt.Sprintf(
			"(EXISTS (SELECT 1 FROM books_book_subjects bs JOIN books_subject s ON s.id = bs.subject_id WHERE bs.book_id = b.id AND s.name ILIKE ANY($%d)) OR EXISTS (SELECT 1 FROM books_book_bookshelves bb JOIN books_bookshelf sh ON sh.id = bb.bookshelf_id WHERE bb.book_id = b.id AND sh.name ILIKE ANY($%d)))",
			argIndex, argIndex))
		args = append(args, likePatterns(filter.Topics))
		argIndex++
	}

	if len(filter.Authors) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM books_book_authors ba JOIN books_author a ON a.id = ba.author_id WHERE ba.book_id = b.id AND a.name ILIKE ANY($%d))",
			argIndex))
		args = append(args, likePatterns(filter.Authors))
		argIndex++
	}

	if len(filter.Titles) > 0 {
		// NULL titles never match ILIKE, which is the intended behavior.
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE ANY($%d)", argIndex))
		args = append(args, likePatterns(filter.Titles))
		argIndex++
	}

	return utils.JoinWithAnd(conditions), args
}

// likePatterns wraps each token in %...% for substring matching, escaping
// LIKE metacharacters so user input matches literally.
func likePatterns(tokens []string) []string {
	patterns := make([]string, 0, len(tokens))
	for _, t := range tokens {
		patterns = append(patterns, "%"+utils.EscapeLike(t)+"%")
	}
	return patterns
}

func (r *postgresRepository) getBookCount(ctx context.Context, whereClause string, args []interface{}) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM books_book b WHERE %s", whereClause)

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}

	return total, nil
}

// buildListBooksQuery builds the page query. Popularity order with NULL
// download counts last, book id as the tie-breaker so pages are stable.
func (r *postgresRepository) buildListBooksQuery(whereClause string, argIndex int) string {
	return fmt.Sprintf(`
		SELECT b.id, b.title, b.gutenberg_id, b.media_type, b.download_count
		FROM books_book b
		WHERE %s
		ORDER BY b.download_count DESC NULLS LAST, b.id ASC
		LIMIT $%d OFFSET $%d`, whereClause, argIndex, argIndex+1)
}

func (r *postgresRepository) executeListQuery(ctx context.Context, query string, args []interface{}) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}

	return books, nil
}

// loadRelated attaches authors, languages, subjects, bookshelves and
// formats to the given books. One batched query per relation instead of
// five queries per book.
func (r *postgresRepository) loadRelated(ctx context.Context, books []model.Book) ([]model.BookDetail, error) {
	details := make([]model.BookDetail, len(books))
	byID := make(map[int64]*model.BookDetail, len(books))
	ids := make([]int64, len(books))
	for i, b := range books {
		details[i] = model.BookDetail{Book: b}
		byID[b.ID] = &details[i]
		ids[i] = b.ID
	}
	if len(books) == 0 {
		return details, nil
	}

	if err := r.loadAuthors(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadLanguages(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadSubjects(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadBookshelves(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadFormats(ctx, ids, byID); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *postgresRepository) loadAuthors(ctx context.Context, ids []int64, byID map[int64]*model.BookDetail) error {
	query := `
		SELECT ba.book_id, a.name, a.birth_year, a.death_year
		FROM books_book_authors ba
		JOIN books_author a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY ba.book_id, a.id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var author model.Author
		if err := rows.Scan(&bookID, &author.Name, &author.BirthYear, &author.DeathYear); err != nil {
			return fmt.Errorf("failed to scan author: %w", err)
		}
		if d, ok := byID[bookID]; ok {
			d.Authors = append(d.Authors, author)
		}
	}

	return rows.Err()
}

func (r *postgresRepository) loadLanguages(ctx context.Context, ids []int64, byID map[int64]*model.BookDetail) error {
	query := `
		SELECT bl.book_id, l.code
		FROM books_book_languages bl
		JOIN books_language l ON l.id = bl.language_id
		WHERE bl.book_id = ANY($1)
		ORDER BY bl.book_id, l.id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var language model.Language
		if err := rows.Scan(&bookID, &language.Code); err != nil {
			return fmt.Errorf("failed to scan language: %w", err)
		}
		if d, ok := byID[bookID]; ok {
			d.Languages = append(d.Languages, language)
		}
	}

	return rows.Err()
}

func (r *postgresRepository) loadSubjects(ctx context.Context, ids []int64, byID map[int64]*model.BookDetail) error {
	query := `
		SELECT bs.book_id, s.name
		FROM books_book_subjects bs
		JOIN books_subject s ON s.id = bs.subject_id
		WHERE bs.book_id = ANY($1)
		ORDER BY bs.book_id, s.id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var subject model.Subject
		if err := rows.Scan(&bookID, &subject.Name); err != nil {
			return fmt.Errorf("failed to scan subject: %w", err)
		}
		if d, ok := byID[bookID]; ok {
			d.Subjects = append(d.Subjects, subject)
		}
	}

	return rows.Err()
}

func (r *postgresRepository) loadBookshelves(ctx context.Context, ids []int64, byID map[int64]*model.BookDetail) error {
	query := `
		SELECT bb.book_id, sh.name
		FROM books_book_bookshelves bb
		JOIN books_bookshelf sh ON sh.id = bb.bookshelf_id
		WHERE bb.book_id = ANY($1)
		ORDER BY bb.book_id, sh.id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load bookshelves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var shelf model.Bookshelf
		if err := rows.Scan(&bookID, &shelf.Name); err != nil {
			return fmt.Errorf("failed to scan bookshelf: %w", err)
		}
		if d, ok := byID[bookID]; ok {
			d.Bookshelves = append(d.Bookshelves, shelf)
		}
	}

	return rows.Err()
}

func (r *postgresRepository) loadFormats(ctx context.Context, ids []int64, byID map[int64]*model.BookDetail) error {
	query := `
		SELECT f.book_id, f.mime_type, f.url
		FROM books_format f
		WHERE f.book_id = ANY($1)
		ORDER BY f.book_id, f.id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load formats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var format model.Format
		if err := rows.Scan(&bookID, &format.MimeType, &format.URL); err != nil {
			return fmt.Errorf("failed to scan format: %w", err)
		}
		if d, ok := byID[bookID]; ok {
			d.Formats = append(d.Formats, format)
		}
	}

	return rows.Err()
}
