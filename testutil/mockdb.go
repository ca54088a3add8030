package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS habitkv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create habitkv table: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// SeedKV inserts key-value pairs into a test database
func SeedKV(t *testing.T, db *sql.DB, pairs map[string]string) {
	t.Helper()
	for key, value := range pairs {
		if _, err := db.Exec("INSERT OR REPLACE INTO habitkv (key, value) VALUES (?, ?)", key, value); err != nil {
			t.Fatalf("Failed to seed key %q: %v", key, err)
		}
	}
}
