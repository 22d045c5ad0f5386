package data

// ToEntity builds a new, not yet persisted Book from req.
// A nil request yields a nil book.
func ToEntity(req *BookRequest) *Book {
	if req == nil {
		return nil
	}

	return &Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		PublishedDate: req.PublishedDate,
	}
}

// ToResponse copies every field of book, including its current ID, into a
// BookResponse. A nil book yields a nil response.
func ToResponse(book *Book) *BookResponse {
	if book == nil {
		return nil
	}

	return &BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		PublishedDate: book.PublishedDate,
	}
}
