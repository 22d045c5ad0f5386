package data

import (
	"context"
	"slices"
	"sync"
)

// MemoryBookStore keeps books in a map. It enforces the same isbn uniqueness
// as the books table and is safe for concurrent use.
type MemoryBookStore struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
}

// NewMemoryBookStore returns an empty store whose first assigned ID is 1.
func NewMemoryBookStore() *MemoryBookStore {
	return &MemoryBookStore{
		books:  make(map[int64]Book),
		nextID: 1,
	}
}

// FindByID returns a copy of the stored book or ErrRecordNotFound.
func (s *MemoryBookStore) FindByID(_ context.Context, id int64) (*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &book, nil
}

// FindAll returns copies of all books in ascending ID order.
func (s *MemoryBookStore) FindAll(_ context.Context) ([]*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	result := make([]*Book, 0, len(ids))
	for _, id := range ids {
		book := s.books[id]
		result = append(result, &book)
	}
	return result, nil
}

// ExistsByISBN reports whether any stored book carries isbn.
func (s *MemoryBookStore) ExistsByISBN(_ context.Context, isbn string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.holderOf(isbn) != 0, nil
}

// ExistsByID reports whether a book with the given id is stored.
func (s *MemoryBookStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.books[id]
	return ok, nil
}

// Save stores a copy of book, assigning the next ID when book has none.
func (s *MemoryBookStore) Save(_ context.Context, book *Book) (*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if holder := s.holderOf(book.ISBN); holder != 0 && holder != book.ID {
		return nil, ErrDuplicateISBN
	}

	if book.Persisted() {
		if _, ok := s.books[book.ID]; !ok {
			return nil, ErrRecordNotFound
		}
	} else {
		book.ID = s.nextID
		s.nextID++
	}

	s.books[book.ID] = *book
	return book, nil
}

// DeleteByID removes the book with the given id, or returns ErrRecordNotFound.
func (s *MemoryBookStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrRecordNotFound
	}

	delete(s.books, id)
	return nil
}

// holderOf returns the ID of the book carrying isbn, or 0. Callers hold mu.
func (s *MemoryBookStore) holderOf(isbn string) int64 {
	for id, book := range s.books {
		if book.ISBN == isbn {
			return id
		}
	}
	return 0
}
