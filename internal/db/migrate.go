package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS course_units (
		id          INTEGER PRIMARY KEY,
		title       TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS course_items (
		id          TEXT PRIMARY KEY,
		unit_id     INTEGER NOT NULL REFERENCES course_units(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		href        TEXT NOT NULL DEFAULT '',
		password    TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	// Lesson links were added after external-page items.
	`ALTER TABLE course_items ADD COLUMN lesson_id TEXT NOT NULL DEFAULT ''`,
	`CREATE TABLE IF NOT EXISTS tools (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		href     TEXT NOT NULL,
		password TEXT NOT NULL DEFAULT ''
	)`,
	// Unlocks outlive catalog re-imports, so they carry no foreign key.
	`CREATE TABLE IF NOT EXISTS unlocks (
		scope       TEXT NOT NULL CHECK(scope IN ('item','tool')),
		target_id   TEXT NOT NULL,
		unlocked_at TEXT NOT NULL,
		PRIMARY KEY (scope, target_id)
	)`,
	`CREATE TABLE IF NOT EXISTS visits (
		id        TEXT PRIMARY KEY,
		lesson_id TEXT NOT NULL,
		view      TEXT NOT NULL DEFAULT '',
		opened_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_course_items_unit ON course_items(unit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tools_name ON tools(name)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_opened ON visits(opened_at)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_lesson ON visits(lesson_id)`,
}
