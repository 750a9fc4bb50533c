package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Local draft snapshots: one serialized project tree per key, plus the
	// expanded-phase UI state and a save timestamp.
	`CREATE TABLE IF NOT EXISTS snapshots (
		key      TEXT PRIMARY KEY,
		blob     TEXT NOT NULL,
		saved_at TEXT NOT NULL
	)`,

	// Submitted projects, normalized so an individual project can be
	// hydrated back into the authoring tree for editing.
	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		client         TEXT NOT NULL DEFAULT '',
		location       TEXT NOT NULL DEFAULT '',
		planned_date   TEXT NOT NULL,
		currency       TEXT NOT NULL DEFAULT '',
		manager_id     TEXT NOT NULL DEFAULT '',
		team_members   TEXT NOT NULL DEFAULT '',
		attachment_ref TEXT NOT NULL DEFAULT '',
		total_budget   TEXT NOT NULL DEFAULT '0',
		submitted_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		phase_number INTEGER NOT NULL,
		name         TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		budget       TEXT NOT NULL DEFAULT '0'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id)`,

	`CREATE TABLE IF NOT EXISTS departments (
		id              TEXT PRIMARY KEY,
		phase_id        TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		order_index     INTEGER NOT NULL DEFAULT 0,
		name            TEXT NOT NULL,
		contractor_mode TEXT NOT NULL DEFAULT 'turnkey'
		                CHECK(contractor_mode IN ('turnkey','labour_only')),
		amount          TEXT NOT NULL DEFAULT '0'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_departments_phase ON departments(phase_id)`,

	`CREATE TABLE IF NOT EXISTS line_items (
		id            TEXT PRIMARY KEY,
		department_id TEXT NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
		order_index   INTEGER NOT NULL DEFAULT 0,
		item_type     TEXT NOT NULL DEFAULT '',
		item          TEXT NOT NULL DEFAULT '',
		spec          TEXT NOT NULL DEFAULT '',
		quantity      TEXT NOT NULL DEFAULT '',
		uom           TEXT NOT NULL DEFAULT '',
		unit_price    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_line_items_department ON line_items(department_id)`,
}
