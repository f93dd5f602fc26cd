package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the plan export schema. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		budget_hours REAL NOT NULL CHECK(budget_hours > 0),
		total_weekly REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS plan_days (
		plan_id     TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		order_index INTEGER NOT NULL,
		day         TEXT NOT NULL,
		PRIMARY KEY (plan_id, order_index)
	)`,
	`CREATE TABLE IF NOT EXISTS plan_subjects (
		plan_id          TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		order_index      INTEGER NOT NULL,
		name             TEXT NOT NULL,
		allocated_hours  REAL NOT NULL,
		weekly_hours     REAL NOT NULL,
		daily_hours      REAL NOT NULL,
		goal             REAL,
		progress         REAL NOT NULL DEFAULT 0,
		remaining_hours  REAL,
		progress_percent REAL NOT NULL DEFAULT 0,
		severity         TEXT NOT NULL CHECK(severity IN ('low','medium','high')),
		overridden       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (plan_id, order_index)
	)`,
	`CREATE TABLE IF NOT EXISTS plan_warnings (
		plan_id     TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		order_index INTEGER NOT NULL,
		message     TEXT NOT NULL,
		PRIMARY KEY (plan_id, order_index)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plan_subjects_name ON plan_subjects(plan_id, name)`,
	`CREATE VIEW IF NOT EXISTS plan_daily AS
		SELECT s.plan_id, s.name AS subject, d.day, s.daily_hours AS hours, d.order_index AS day_index, s.order_index AS subject_index
		FROM plan_subjects s JOIN plan_days d ON d.plan_id = s.plan_id`,
}
