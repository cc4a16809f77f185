// Package db opens the portal's SQLite store (catalog, unlocks, visits)
// and runs multi-statement writes such as a catalog import in one
// transaction.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// pragmas run on every new store. The busy timeout covers a second portal
// process (the TUI and a CLI command) writing unlocks at the same time.
var pragmas = []struct{ stmt, what string }{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
}

// Open opens the store at path and brings its schema up to date. The
// parent directory is created for file paths. MemoryPath is pinned to one
// connection, since each connection would otherwise get its own empty
// database.
func Open(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	store, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if memory {
		store.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := store.Exec(p.stmt); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}
	if err := Migrate(store); err != nil {
		store.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return store, nil
}
