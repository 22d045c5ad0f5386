package books

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("book not found")

	// ErrDuplicateKey matches every DuplicateKeyError.
	ErrDuplicateKey = errors.New("duplicate isbn")
)

// NotFoundError reports an operation on an id with no stored book.
type NotFoundError struct {
	ID  int64
	Err error // storage error that revealed the absence, if any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("book not found with id: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// DuplicateKeyError reports an isbn already held by another book.
type DuplicateKeyError struct {
	ISBN string
	Err  error // storage error when the collision was caught on write
}

func (e *DuplicateKeyError) Error() string {
	return "isbn already registered: " + e.ISBN
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

func (e *DuplicateKeyError) Unwrap() error { return e.Err }
