// cmd/api/seed.go
package main

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"

	"github.com/aoideee/books-api/internal/books"
	"github.com/aoideee/books-api/internal/data"
)

// sampleBooks are inserted when the server starts with -seed.
var sampleBooks = []data.BookRequest{
	{
		Title:         "Clean Code",
		Author:        "Robert C. Martin",
		ISBN:          "978-0132350884",
		PublishedDate: civil.Date{Year: 2008, Month: time.August, Day: 1},
	},
}

// seed creates every sample book through the book service. Books whose ISBN
// is already registered are skipped, so seeding twice is harmless.
func (app *applicationDependencies) seed(ctx context.Context) error {
	for _, input := range sampleBooks {
		book, err := app.books.Create(ctx, &input)
		switch {
		case errors.Is(err, books.ErrDuplicateKey):
			app.logger.Info("sample book already present", "isbn", input.ISBN)
		case err != nil:
			return err
		default:
			app.logger.Info("sample book created", "id", book.ID, "title", book.Title)
		}
	}
	return nil
}
