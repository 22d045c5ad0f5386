// cmd/api/healthcheck.go
package main

import (
	"context"
	"errors"
	"net/http"
)

// pinger is implemented by stores that can report their own reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// healthcheckHandler handles GET /v1/healthcheck and reports the running
// environment and API version.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"version":     appVersion,
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// readinessHandler handles GET /v1/readiness. It answers 503 while the book
// store cannot be reached. Stores without a Ping method are always ready.
func (app *applicationDependencies) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if p, ok := app.store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			app.logError(r, errors.Join(errors.New("readiness check failed"), err))
			app.errorResponse(w, r, http.StatusServiceUnavailable, "the book store is not reachable")
			return
		}
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"status": "ready"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
