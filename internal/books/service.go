// Package books holds the operations behind the books API: uniqueness and
// existence checks, persistence through a Repository, and mapping between
// transfer shapes and stored records.
//
// Requests are expected to have passed data.ValidateBookRequest already; the
// Service does not repeat field validation.
package books

import (
	"context"
	"errors"

	"github.com/aoideee/books-api/internal/data"
)

// Service is stateless apart from its Repository and is safe for concurrent use.
type Service struct {
	repo Repository
}

// NewService returns a Service that persists through repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new book built from req.
// It fails with a DuplicateKeyError when req.ISBN is already registered.
func (s *Service) Create(ctx context.Context, req *data.BookRequest) (*data.BookResponse, error) {
	exists, err := s.repo.ExistsByISBN(ctx, req.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &DuplicateKeyError{ISBN: req.ISBN}
	}

	saved, err := s.repo.Save(ctx, data.ToEntity(req))
	if err != nil {
		return nil, classifyWriteError(err, 0, req.ISBN)
	}

	return data.ToResponse(saved), nil
}

// Update replaces the four business fields of the book with the given id.
// The isbn uniqueness check only runs when the isbn actually changes.
func (s *Service) Update(ctx context.Context, id int64, req *data.BookRequest) (*data.BookResponse, error) {
	book, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if book.ISBN != req.ISBN {
		exists, err := s.repo.ExistsByISBN(ctx, req.ISBN)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &DuplicateKeyError{ISBN: req.ISBN}
		}
	}

	book.Title = req.Title
	book.Author = req.Author
	book.ISBN = req.ISBN
	book.PublishedDate = req.PublishedDate

	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, classifyWriteError(err, id, req.ISBN)
	}

	return data.ToResponse(saved), nil
}

// GetByID returns the book with the given id or a NotFoundError.
func (s *Service) GetByID(ctx context.Context, id int64) (*data.BookResponse, error) {
	book, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return data.ToResponse(book), nil
}

// ListAll returns every book in the order the Repository yields them.
// An empty store gives an empty, non-nil slice.
func (s *Service) ListAll(ctx context.Context) ([]*data.BookResponse, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*data.BookResponse, 0, len(all))
	for _, book := range all {
		responses = append(responses, data.ToResponse(book))
	}
	return responses, nil
}

// Delete removes the book with the given id. A missing book yields a
// NotFoundError and the Repository's DeleteByID is never called.
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{ID: id}
	}

	err = s.repo.DeleteByID(ctx, id)
	if errors.Is(err, data.ErrRecordNotFound) {
		return &NotFoundError{ID: id, Err: err}
	}
	return err
}

func (s *Service) find(ctx context.Context, id int64) (*data.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id, Err: err}
		}
		return nil, err
	}
	return book, nil
}

// classifyWriteError classifies a Save failure. The unique constraint catches a
// concurrent writer that slipped past the ExistsByISBN check.
func classifyWriteError(err error, id int64, isbn string) error {
	switch {
	case errors.Is(err, data.ErrDuplicateISBN):
		return &DuplicateKeyError{ISBN: isbn, Err: err}
	case errors.Is(err, data.ErrRecordNotFound) && id > 0:
		return &NotFoundError{ID: id, Err: err}
	default:
		return err
	}
}
