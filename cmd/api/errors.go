// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Every error body has the shape {"status", "error", "message", "path"}.
package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aoideee/books-api/internal/books"
	"github.com/aoideee/books-api/internal/validator"
)

// logError logs an internal error at ERROR level with the request method, URL
// and request id for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFrom(r)),
	)
}

// errorEnvelope builds the standard error body for status and message.
func errorEnvelope(r *http.Request, status int, message string) envelope {
	return envelope{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
		"path":    r.URL.Path,
	}
}

// writeError sends body with the given status code, falling back to a bare
// 500 if the body cannot be written.
func (app *applicationDependencies) writeError(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// errorResponse sends a JSON error envelope with the given status code and message.
// It is the low-level building block used by all the specific error helpers below.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeError(w, r, status, errorEnvelope(r, status, message))
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
// We never expose internal error details to the client for security reasons.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

// notFoundResponse sends a 404 Not Found error for unknown routes.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request error with the error message from the caller.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 400 Bad Request response. The message names
// the first failing field and "fields" lists every field-level error.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, v *validator.Validator) {
	body := errorEnvelope(r, http.StatusBadRequest, v.FirstError())
	body["fields"] = v.Errors
	app.writeError(w, r, http.StatusBadRequest, body)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// bookErrorResponse maps an error from the book service onto a response:
// missing books are 404, duplicate ISBNs are 400, anything else is a 500.
func (app *applicationDependencies) bookErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, books.ErrNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, books.ErrDuplicateKey):
		app.errorResponse(w, r, http.StatusBadRequest, err.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}
