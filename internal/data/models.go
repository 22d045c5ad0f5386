// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lib/pq"
)

// queryTimeout bounds every statement issued by BookModel.
const queryTimeout = 3 * time.Second

// uniqueViolation is the PostgreSQL SQLSTATE for a UNIQUE constraint failure.
const uniqueViolation = "23505"

var (
	// ErrRecordNotFound is returned when a query finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateISBN is returned when a write would give two books the same ISBN.
	ErrDuplicateISBN = errors.New("duplicate isbn")
)

// Models is a top-level container that groups all database model types together.
type Models struct {
	Books BookModel // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given database connection pool.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// Ping checks that the database is reachable.
func (m BookModel) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return m.DB.PingContext(ctx)
}

// FindByID retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) FindByID(ctx context.Context, id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT id, title, author, isbn, published_date
		FROM books
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		book      Book
		published time.Time
	)
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&published,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("find book %d: %w", id, err)
		}
	}
	book.PublishedDate = civil.DateOf(published)

	return &book, nil
}

// FindAll retrieves every book ordered by id.
func (m BookModel) FindAll(ctx context.Context) ([]*Book, error) {
	query := `
		SELECT id, title, author, isbn, published_date
		FROM books
		ORDER BY id ASC`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var (
			book      Book
			published time.Time
		)
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.ISBN,
			&published,
		)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		book.PublishedDate = civil.DateOf(published)
		books = append(books, &book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return books, nil
}

// ExistsByISBN reports whether any book carries isbn.
func (m BookModel) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	if err := m.DB.QueryRowContext(ctx, query, isbn).Scan(&exists); err != nil {
		return false, fmt.Errorf("check isbn %q: %w", isbn, err)
	}
	return exists, nil
}

// ExistsByID reports whether a book with the given id exists.
func (m BookModel) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if id < 1 {
		return false, nil
	}

	query := `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	if err := m.DB.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check book %d: %w", id, err)
	}
	return exists, nil
}

// Save inserts book when it has no ID yet, writing the assigned ID back into
// it, and otherwise overwrites the stored row. It returns book.
// A clash with the isbn unique constraint is reported as ErrDuplicateISBN.
func (m BookModel) Save(ctx context.Context, book *Book) (*Book, error) {
	var err error
	if book.Persisted() {
		err = m.update(ctx, book)
	} else {
		err = m.insert(ctx, book)
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (m BookModel) insert(ctx context.Context, book *Book) error {
	query := `
		INSERT INTO books (title, author, isbn, published_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := m.DB.QueryRowContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.ISBN,
		book.PublishedDate.In(time.UTC),
	).Scan(&book.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateISBN
		}
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

func (m BookModel) update(ctx context.Context, book *Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, published_date = $4
		WHERE id = $5`

	args := []any{
		book.Title,
		book.Author,
		book.ISBN,
		book.PublishedDate.In(time.UTC),
		book.ID,
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateISBN
		}
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// DeleteByID removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) DeleteByID(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
