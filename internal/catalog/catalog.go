// Package catalog keeps a sqlite history of backup runs and saved messages.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/robinFdr/MailBackup/internal/backup"
	"github.com/robinFdr/MailBackup/pkg/models"
)

// DB wraps sqlx.DB
type DB struct {
	*sqlx.DB
}

// Open creates a new catalog database connection
func Open(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	// Connect with WAL mode and foreign keys enabled
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	return &DB{db}, nil
}

// Migrate runs database migrations
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// BeginRun inserts a run row and returns a recorder for its messages.
func (db *DB) BeginRun(ctx context.Context, account string, startedAt time.Time) (backup.RunRecorder, error) {
	query := `INSERT INTO backup_runs (account, started_at) VALUES (?, ?)`
	result, err := db.ExecContext(ctx, query, account, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get run id: %w", err)
	}
	return &runRecorder{db: db, runID: id}, nil
}

type runRecorder struct {
	db    *DB
	runID int64
}

func (r *runRecorder) Record(ctx context.Context, rec *models.MessageRecord) error {
	query := `
		INSERT INTO saved_messages (run_id, folder, file_location, subject, from_addr, to_addr, date, attachments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		r.runID,
		rec.Folder,
		rec.FileLocation,
		rec.Subject,
		rec.From,
		rec.To,
		rec.Date,
		rec.Attachments,
	)
	if err != nil {
		return fmt.Errorf("failed to record message: %w", err)
	}
	return nil
}

func (r *runRecorder) Finish(ctx context.Context, saved, failed int) error {
	query := `UPDATE backup_runs SET saved = ?, failed = ?, finished_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, saved, failed, time.Now(), r.runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// Run is one row of backup history.
type Run struct {
	ID         int64      `db:"id"`
	Account    string     `db:"account"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
	Saved      int        `db:"saved"`
	Failed     int        `db:"failed"`
}

// RunsByAccount returns the recorded runs of an account, newest first.
func (db *DB) RunsByAccount(ctx context.Context, account string) ([]*Run, error) {
	var runs []*Run
	query := `SELECT * FROM backup_runs WHERE account = ? ORDER BY started_at DESC`
	if err := db.SelectContext(ctx, &runs, query, account); err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	return runs, nil
}
