// Package main is the entry point for the books API server.
// It wires together configuration, the book store, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/aoideee/books-api/internal/books"
	"github.com/aoideee/books-api/internal/data"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig     // Server configuration loaded from env and flags
	logger *slog.Logger     // Structured logger that writes to stdout
	books  *books.Service   // Book operations used by the handlers
	store  books.Repository // Backing store, kept for readiness checks
}

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	settings, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := run(settings, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// run opens the configured store, optionally seeds it, and serves HTTP until shutdown.
func run(settings serverConfig, logger *slog.Logger) error {
	store, closeStore, err := openStore(settings, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	app := &applicationDependencies{
		config: settings,
		logger: logger,
		books:  books.NewService(store),
		store:  store,
	}

	if settings.seed {
		if err := app.seed(context.Background()); err != nil {
			return err
		}
	}

	return app.serve()
}

// openStore returns the book store selected by settings.store and a function
// that releases its resources.
func openStore(settings serverConfig, logger *slog.Logger) (books.Repository, func(), error) {
	if settings.store == storeMemory {
		logger.Info("using in-memory book store")
		return data.NewMemoryBookStore(), func() {}, nil
	}

	db, err := openDB(settings)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("database connection pool established")

	return data.NewModels(db).Books, func() { db.Close() }, nil
}

// openDB opens a PostgreSQL connection pool using the DSN stored in settings,
// then pings the database with a 5-second timeout to confirm it is reachable.
func openDB(settings serverConfig) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open("postgres", settings.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.db.maxOpenConns)
	db.SetMaxIdleConns(settings.db.maxIdleConns)
	db.SetConnMaxIdleTime(settings.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
