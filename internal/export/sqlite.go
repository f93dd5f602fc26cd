package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
)

// SQLiteExporter writes the plan into a standalone SQLite database file and
// streams the file to w. The schema lives in the db package; the plan_daily
// view gives the subject-by-day grid.
type SQLiteExporter struct {
	// TempDir holds the scratch database. Empty means os.TempDir().
	TempDir string
}

func NewSQLiteExporter() *SQLiteExporter { return &SQLiteExporter{} }

func (SQLiteExporter) Format() Format      { return FormatSQLite }
func (SQLiteExporter) Extension() string   { return "db" }
func (SQLiteExporter) ContentType() string { return "application/vnd.sqlite3" }

func (e SQLiteExporter) Export(ctx context.Context, w io.Writer, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := os.MkdirTemp(e.TempDir, "studyplan-export-*")
	if err != nil {
		return fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "plan.db")
	if err := writeSQLite(ctx, path, doc); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading exported database: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying exported database: %w", err)
	}
	return nil
}

func writeSQLite(ctx context.Context, path string, doc Document) error {
	database, err := db.OpenDB(path)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := writeDocument(ctx, db.NewSQLiteUnitOfWork(database), doc); err != nil {
		return err
	}
	return database.Close()
}

// writeDocument inserts doc in a single transaction.
func writeDocument(ctx context.Context, uow db.UnitOfWork, doc Document) error {
	if err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertDocument(ctx, tx, doc)
	}); err != nil {
		return fmt.Errorf("writing plan to sqlite: %w", err)
	}
	return nil
}

func insertDocument(ctx context.Context, tx db.DBTX, doc Document) error {
	planID := doc.PlanID
	if planID == "" {
		planID = "plan"
	}
	generatedAt := doc.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO plans (id, title, generated_at, budget_hours, total_weekly) VALUES (?, ?, ?, ?, ?)`,
		planID, doc.title(), generatedAt.UTC().Format(time.RFC3339), doc.BudgetHours, doc.TotalWeeklyHours,
	); err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for i, day := range doc.Days {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO plan_days (plan_id, order_index, day) VALUES (?, ?, ?)`,
			planID, i, day,
		); err != nil {
			return fmt.Errorf("inserting day %q: %w", day, err)
		}
	}

	for i, r := range doc.Rows {
		overridden := 0
		if r.Overridden {
			overridden = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO plan_subjects (
				plan_id, order_index, name, allocated_hours, weekly_hours, daily_hours,
				goal, progress, remaining_hours, progress_percent, severity, overridden
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			planID, i, r.Subject, r.AllocatedHours, r.WeeklyHours, r.DailyHours,
			r.Goal, r.Progress, r.Remaining, r.ProgressPct, string(r.Severity), overridden,
		); err != nil {
			return fmt.Errorf("inserting subject %q: %w", r.Subject, err)
		}
	}

	for i, msg := range doc.Warnings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO plan_warnings (plan_id, order_index, message) VALUES (?, ?, ?)`,
			planID, i, msg,
		); err != nil {
			return fmt.Errorf("inserting warning: %w", err)
		}
	}
	return nil
}
