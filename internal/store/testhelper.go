package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"triage-server/internal/observability"
)

// TestDBType represents the type of database to use for testing
type TestDBType string

const (
	TestDBTypeSQLite   TestDBType = "sqlite"
	TestDBTypePostgres TestDBType = "postgres"
)

// TestDB wraps a test database instance
type TestDB struct {
	db     *sqlx.DB
	Store  Store
	dbType TestDBType
}

// SetupTestDB creates a migrated test database. SQLite runs in memory;
// postgres needs TEST_DB_HOST and friends to point at a running server.
// An empty dbType reads TEST_DB_TYPE and defaults to sqlite.
func SetupTestDB(t *testing.T, dbType TestDBType) *TestDB {
	t.Helper()

	if dbType == "" {
		dbType = TestDBType(os.Getenv("TEST_DB_TYPE"))
		if dbType == "" {
			dbType = TestDBTypeSQLite
		}
	}

	logger := observability.FromZap(zap.NewNop())

	var (
		s   Store
		err error
	)
	switch dbType {
	case TestDBTypeSQLite:
		// A named shared-cache database keeps tests isolated from each other.
		name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
		s, err = NewSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), logger)
	case TestDBTypePostgres:
		s, err = NewPostgres(postgresTestURL(), logger)
	default:
		t.Fatalf("unsupported database type: %s", dbType)
	}
	if err != nil {
		t.Fatalf("failed to setup test database: %v", err)
	}
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	tdb := &TestDB{db: s.db, Store: s, dbType: dbType}
	t.Cleanup(func() { _ = tdb.Close() })
	return tdb
}

func postgresTestURL() string {
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		get("TEST_DB_USER", "triage_user"),
		get("TEST_DB_PASSWORD", "triage_password"),
		get("TEST_DB_HOST", "localhost"),
		get("TEST_DB_PORT", "5432"),
		get("TEST_DB_NAME", "triage_db"),
	)
}

// Truncate clears all data from the document tables
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	for _, table := range []string{"tickets", "tweets"} {
		if _, err := tdb.db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() error {
	return tdb.db.Close()
}
