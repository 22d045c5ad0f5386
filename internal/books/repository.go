package books

import (
	"context"

	"github.com/aoideee/books-api/internal/data"
)

//go:generate mockgen -destination=mock_repository_test.go -package=books . Repository

// Repository is the storage contract the Service depends on.
// FindByID reports a missing book with data.ErrRecordNotFound, and Save
// reports an isbn collision with data.ErrDuplicateISBN.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*data.Book, error)
	FindAll(ctx context.Context) ([]*data.Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, book *data.Book) (*data.Book, error)
	DeleteByID(ctx context.Context, id int64) error
}

var (
	_ Repository = data.BookModel{}
	_ Repository = (*data.MemoryBookStore)(nil)
)
