package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS habitkv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenDatabase opens (creating if needed) the SQLite database backing the
// key-value store
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create habitkv table: %w", err)
	}

	return db, nil
}
