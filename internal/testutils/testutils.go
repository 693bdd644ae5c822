// Package testutils provides shared helpers for integration tests that
// need a real PostgreSQL database. Tests run inside a transaction that is
// rolled back on cleanup, so they stay isolated and need no manual
// teardown.
package testutils

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/seedstage/mentorship-api/internal/store"
)

// migrationsRunOnce ensures migrations are only run once across all tests
var migrationsRunOnce sync.Once

// IsIntegrationTestEnvironment returns true if the environment is
// configured for running integration tests with a database connection.
// Integration tests should check this and skip when it returns false.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// GetTestDB opens a connection to the test database named by DATABASE_URL
// and runs migrations once per process.
func GetTestDB() (*sql.DB, error) {
	db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		_ = closeErr
		return nil, err
	}

	var migrateErr error
	migrationsRunOnce.Do(func() {
		migrateErr = goose.Up(db, migrationsDir())
	})
	if migrateErr != nil {
		_ = db.Close()
		return nil, migrateErr
	}

	return db, nil
}

// WithTx runs fn inside a transaction that is always rolled back, keeping
// every test's writes invisible to the rest of the suite.
func WithTx(t *testing.T, db *sql.DB, fn func(tx store.DBTX)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin test transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(tx)
}

// AssertCloseNoError closes the database and fails the test on error.
func AssertCloseNoError(t *testing.T, db *sql.DB) {
	t.Helper()
	require.NoError(t, db.Close(), "failed to close test database")
}

// migrationsDir locates the goose migrations directory relative to this
// source file, so tests work regardless of the working directory.
func migrationsDir() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "platform", "postgres", "migrations")
}
