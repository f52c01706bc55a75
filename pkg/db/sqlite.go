package db

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a SQLite database connection and provides typed access to the
// collections the insight pipeline reads and appends to: attention states,
// sleep summaries, tags, the chat log and insights.
//
// The pipeline never updates or deletes rows; everything here is either a
// windowed read or an append.
type Store struct {
	db     *sqlx.DB
	logger *log.Logger
}

// NewStore creates a new SQLite-backed store and runs pending migrations.
func NewStore(dbPath string, logger *log.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	// Enable WAL mode for better concurrency and performance
	_, err = db.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := RunMigrations(db.DB, logger); err != nil {
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sqlx.DB instance.
func (s *Store) DB() *sqlx.DB {
	return s.db
}
