// Package history keeps a per-attempt outcome log in a SQLite database under
// the work root. It is strictly write-behind monitoring: coordination truth
// lives in the state directories, and a history failure never affects a job.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"plexify/internal/logging"
)

// Outcomes recorded per attempt.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// Attempt is one processing attempt by one worker.
type Attempt struct {
	Identity   string
	WorkerID   string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    string
	ExitCode   int
	Message    string
}

// Log is an open handle on the history database.
type Log struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    identity TEXT NOT NULL,
    worker_id TEXT NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    outcome TEXT NOT NULL,
    exit_code INTEGER NOT NULL DEFAULT 0,
    message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_attempts_identity ON attempts(identity);
CREATE INDEX IF NOT EXISTS idx_attempts_finished ON attempts(finished_at);
`

// Open creates or opens history.db under workRoot and applies the schema.
func Open(workRoot string, logger *slog.Logger) (*Log, error) {
	dbPath := filepath.Join(workRoot, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Log{db: db, logger: logging.WithComponent(logger, "history")}, nil
}

// Close releases the database handle.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// RecordAttempt appends one attempt row. A nil log drops the record; callers
// never branch on whether history is enabled.
func (l *Log) RecordAttempt(a Attempt) {
	if l == nil || l.db == nil {
		return
	}
	_, err := l.db.Exec(
		`INSERT INTO attempts (identity, worker_id, started_at, finished_at, outcome, exit_code, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Identity, a.WorkerID,
		a.StartedAt.UTC().Format(time.RFC3339Nano),
		a.FinishedAt.UTC().Format(time.RFC3339Nano),
		a.Outcome, a.ExitCode, a.Message,
	)
	if err != nil {
		l.logger.Warn("failed to record attempt",
			logging.String("identity", a.Identity),
			logging.Error(err),
		)
	}
}

// Recent returns up to limit attempts, newest first.
func (l *Log) Recent(limit int) ([]Attempt, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}
	rows, err := l.db.Query(
		`SELECT identity, worker_id, started_at, finished_at, outcome, exit_code, message
		 FROM attempts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var started, finished string
		if err := rows.Scan(&a.Identity, &a.WorkerID, &started, &finished, &a.Outcome, &a.ExitCode, &a.Message); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		a.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read attempts: %w", err)
	}
	return attempts, nil
}

// Summary returns attempt counts per outcome.
func (l *Log) Summary() (map[string]int, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}
	rows, err := l.db.Query(`SELECT outcome, COUNT(*) FROM attempts GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("summarize attempts: %w", err)
	}
	defer rows.Close()

	summary := make(map[string]int)
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summary[outcome] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	return summary, nil
}
