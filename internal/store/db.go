package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"triage-server/internal/observability"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

const pgUniqueViolation = "23505"

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

// NewPostgres opens a PostgreSQL-backed store
func NewPostgres(connectionString string, logger *observability.Logger) (Store, error) {
	return open("pgx", connectionString, logger)
}

// NewSQLite opens a SQLite-backed store. path may be ":memory:" or a
// "file:" URI.
func NewSQLite(path string, logger *observability.Logger) (Store, error) {
	s, err := open("sqlite", path, logger)
	if err != nil {
		return Store{}, err
	}
	// SQLite allows a single writer.
	s.db.SetMaxOpenConns(1)
	return s, nil
}

func open(driver, dsn string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	return Store{db: db, logger: logger}, nil
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

var sqlSchema = []string{`
CREATE TABLE IF NOT EXISTS tickets (
	ticket_id TEXT PRIMARY KEY,
	status    TEXT NOT NULL,
	datetime  TEXT NOT NULL,
	document  TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS tweets (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	document   TEXT NOT NULL
)`,
}

// Migrate creates the document tables when they do not exist
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range sqlSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
