package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/books-api/internal/books"
	"github.com/aoideee/books-api/internal/data"
)

const cleanCodeJSON = `{"title":"Clean Code","author":"Robert C. Martin","isbn":"978-0132350884","published_date":"2008-08-01"}`

func newTestApplication(t *testing.T, store books.Repository) *applicationDependencies {
	t.Helper()

	if store == nil {
		store = data.NewMemoryBookStore()
	}

	var settings serverConfig
	settings.environment = "development"
	settings.store = storeMemory

	return &applicationDependencies{
		config: settings,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		books:  books.NewService(store),
		store:  store,
	}
}

func (app *applicationDependencies) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

type bookBody struct {
	Book data.BookResponse `json:"book"`
}

type errorBody struct {
	Status  int               `json:"status"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Path    string            `json:"path"`
	Fields  map[string]string `json:"fields"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestCreateBookHandler(t *testing.T) {
	app := newTestApplication(t, nil)

	rr := app.do(t, http.MethodPost, "/v1/books", cleanCodeJSON)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/v1/books/1", rr.Header().Get("Location"))

	got := decode[bookBody](t, rr).Book
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Clean Code", got.Title)
	assert.Equal(t, "Robert C. Martin", got.Author)
	assert.Equal(t, "978-0132350884", got.ISBN)
	assert.Equal(t, "2008-08-01", got.PublishedDate.String())

	t.Run("duplicate isbn", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/v1/books", cleanCodeJSON)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		body := decode[errorBody](t, rr)
		assert.Equal(t, http.StatusBadRequest, body.Status)
		assert.Equal(t, "Bad Request", body.Error)
		assert.Equal(t, "isbn already registered: 978-0132350884", body.Message)
		assert.Equal(t, "/v1/books", body.Path)

		list := app.do(t, http.MethodGet, "/v1/books", "")
		assert.Len(t, decode[struct {
			Books []data.BookResponse `json:"books"`
		}](t, list).Books, 1)
	})
}

func TestCreateBookHandler_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		field   string
	}{
		{
			name:    "blank title",
			body:    `{"title":"  ","author":"Robert C. Martin","isbn":"978-0132350884","published_date":"2008-08-01"}`,
			message: "title: must be provided",
			field:   "title",
		},
		{
			name:    "missing date",
			body:    `{"title":"Clean Code","author":"Robert C. Martin","isbn":"978-0132350884"}`,
			message: "published_date: must be provided",
			field:   "published_date",
		},
		{
			name:    "short isbn and author",
			body:    `{"title":"Clean Code","author":"RC","isbn":"123","published_date":"2008-08-01"}`,
			message: "author: must be between 3 and 100 characters",
			field:   "isbn",
		},
		{
			name:    "unknown field",
			body:    `{"title":"Clean Code","pages":464}`,
			message: `body contains unknown key "pages"`,
		},
		{
			name:    "malformed json",
			body:    `{"title":`,
			message: "body contains badly-formed JSON",
		},
		{
			name:    "empty body",
			body:    "",
			message: "body must not be empty",
		},
		{
			name:    "wrong type",
			body:    `{"title":42}`,
			message: `body contains incorrect JSON type for field "title"`,
		},
		{
			name:    "two values",
			body:    cleanCodeJSON + cleanCodeJSON,
			message: "body must only contain a single JSON value",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(t, nil)

			rr := app.do(t, http.MethodPost, "/v1/books", tc.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			body := decode[errorBody](t, rr)
			assert.Equal(t, tc.message, body.Message)
			if tc.field != "" {
				assert.Contains(t, body.Fields, tc.field)
			}
		})
	}
}

func TestShowBookHandler(t *testing.T) {
	app := newTestApplication(t, nil)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/v1/books", cleanCodeJSON).Code)

	rr := app.do(t, http.MethodGet, "/v1/books/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Clean Code", decode[bookBody](t, rr).Book.Title)

	rr = app.do(t, http.MethodGet, "/v1/books/999", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	body := decode[errorBody](t, rr)
	assert.Equal(t, 404, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "book not found with id: 999", body.Message)
	assert.Equal(t, "/v1/books/999", body.Path)

	for _, id := range []string{"abc", "0", "-1"} {
		rr = app.do(t, http.MethodGet, "/v1/books/"+id, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, "id %q", id)
	}
}

func TestListBooksHandler_Empty(t *testing.T) {
	app := newTestApplication(t, nil)

	rr := app.do(t, http.MethodGet, "/v1/books", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"books": []}`, rr.Body.String())
}

func TestUpdateBookHandler(t *testing.T) {
	app := newTestApplication(t, nil)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/v1/books", cleanCodeJSON).Code)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/v1/books",
		`{"title":"Clean Architecture","author":"Robert C. Martin","isbn":"978-0134494166","published_date":"2017-09-12"}`).Code)

	t.Run("title only", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/v1/books/1",
			`{"title":"Clean Code - 2nd Edition","author":"Robert C. Martin","isbn":"978-0132350884","published_date":"2008-08-01"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		got := decode[bookBody](t, rr).Book
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "Clean Code - 2nd Edition", got.Title)
		assert.Equal(t, "Robert C. Martin", got.Author)
		assert.Equal(t, "978-0132350884", got.ISBN)
		assert.Equal(t, "2008-08-01", got.PublishedDate.String())
	})

	t.Run("isbn of another book", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/v1/books/1",
			`{"title":"Clean Code","author":"Robert C. Martin","isbn":"978-0134494166","published_date":"2008-08-01"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "isbn already registered: 978-0134494166", decode[errorBody](t, rr).Message)

		show := app.do(t, http.MethodGet, "/v1/books/1", "")
		assert.Equal(t, "978-0132350884", decode[bookBody](t, show).Book.ISBN)
	})

	t.Run("missing book", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/v1/books/42", cleanCodeJSON)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/v1/books/1", `{"title":"Go","author":"Robert C. Martin","isbn":"978-0132350884","published_date":"2008-08-01"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteBookHandler(t *testing.T) {
	app := newTestApplication(t, nil)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/v1/books", cleanCodeJSON).Code)

	rr := app.do(t, http.MethodDelete, "/v1/books/1", "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = app.do(t, http.MethodGet, "/v1/books/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = app.do(t, http.MethodDelete, "/v1/books/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// failingStore breaks FindAll so the generic 500 path can be observed.
type failingStore struct {
	*data.MemoryBookStore
}

func (failingStore) FindAll(context.Context) ([]*data.Book, error) {
	return nil, errors.New("pq: relation \"books\" does not exist")
}

func TestServerErrorHidesDetails(t *testing.T) {
	app := newTestApplication(t, failingStore{data.NewMemoryBookStore()})

	rr := app.do(t, http.MethodGet, "/v1/books", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	body := decode[errorBody](t, rr)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Equal(t, "the server encountered a problem and could not process your request", body.Message)
	assert.NotContains(t, body.Message, "relation")
}

func TestRouterErrors(t *testing.T) {
	app := newTestApplication(t, nil)

	rr := app.do(t, http.MethodGet, "/v1/authors", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "the requested resource could not be found", decode[errorBody](t, rr).Message)

	rr = app.do(t, http.MethodPatch, "/v1/books/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "the PATCH method is not supported for this resource", decode[errorBody](t, rr).Message)
}
