// Package testsupport provides shared helpers for repository tests.
package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared in-memory SQLite database for submission
// repository tests. Callers should SetMaxOpenConns(1) on the bun handle so
// every query sees the same memory database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}
