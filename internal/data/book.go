// Package data provides the book record, its transfer shapes, and the
// storage implementations used by the books API.
package data

import (
	"unicode/utf8"

	"cloud.google.com/go/civil"

	"github.com/aoideee/books-api/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID            int64      // Assigned by the store on first save; zero until then
	Title         string     // Title of the book
	Author        string     // Author's full name
	ISBN          string     // Unique across all records
	PublishedDate civil.Date // Calendar date of publication
}

// Persisted reports whether the book has been assigned an ID by a store.
func (b *Book) Persisted() bool {
	return b.ID > 0
}

// BookRequest holds the fields a client supplies when creating or replacing a book.
type BookRequest struct {
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ISBN          string     `json:"isbn"`
	PublishedDate civil.Date `json:"published_date"`
}

// BookResponse is the outbound representation of a stored book.
type BookResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ISBN          string     `json:"isbn"`
	PublishedDate civil.Date `json:"published_date"`
}

// ValidateBookRequest records every field-level problem with req in v.
// Lengths are counted in characters, not bytes.
func ValidateBookRequest(v *validator.Validator, req *BookRequest) {
	v.Check(validator.NotBlank(req.Title), "title", "must be provided")
	v.Check(validator.Between(utf8.RuneCountInString(req.Title), 3, 100), "title", "must be between 3 and 100 characters")

	v.Check(validator.NotBlank(req.Author), "author", "must be provided")
	v.Check(validator.Between(utf8.RuneCountInString(req.Author), 3, 100), "author", "must be between 3 and 100 characters")

	v.Check(validator.NotBlank(req.ISBN), "isbn", "must be provided")
	v.Check(validator.Between(utf8.RuneCountInString(req.ISBN), 10, 17), "isbn", "must be between 10 and 17 characters")

	v.Check(!req.PublishedDate.IsZero(), "published_date", "must be provided")
	v.Check(req.PublishedDate.IsZero() || req.PublishedDate.IsValid(), "published_date", "must be a valid calendar date")
}
