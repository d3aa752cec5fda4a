package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"setbeast/internal/core/workout"

	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS workouts (
    id TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL,
    ended_at DATETIME NOT NULL,
    duration_seconds INTEGER NOT NULL,
    total_sets INTEGER NOT NULL,
    interval_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_workouts_started_at ON workouts(started_at);
`

// HistoryStats aggregates finished workouts.
type HistoryStats struct {
	Workouts     int
	TotalSets    int
	TotalSeconds int
}

// HistoryStore keeps finished workouts in SQLite.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory opens or creates the workout history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	slog.Debug("history store opened", "path", path)
	return &HistoryStore{db: db}, nil
}

// Close releases the database.
func (store *HistoryStore) Close() error {
	return store.db.Close()
}

// Record stores a finished workout. Sessions without sets or elapsed time
// are skipped.
func (store *HistoryStore) Record(ctx context.Context, session workout.Session) error {
	if session.ID == "" {
		return fmt.Errorf("record workout: empty session id")
	}
	if session.TotalSets == 0 && session.DurationSeconds == 0 {
		return nil
	}

	_, err := store.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO workouts (id, started_at, ended_at, duration_seconds, total_sets, interval_seconds)
        VALUES (?, ?, ?, ?, ?, ?)
    `, session.ID, session.StartedAt.UTC(), session.EndedAt.UTC(), session.DurationSeconds, session.TotalSets, session.IntervalSeconds)
	if err != nil {
		return fmt.Errorf("record workout: %w", err)
	}
	return nil
}

// Recent returns the latest finished workouts, newest first.
func (store *HistoryStore) Recent(ctx context.Context, limit int) ([]workout.Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := store.db.QueryContext(ctx, `
        SELECT id, started_at, ended_at, duration_seconds, total_sets, interval_seconds
        FROM workouts
        ORDER BY started_at DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent workouts: %w", err)
	}
	defer rows.Close()

	var sessions []workout.Session
	for rows.Next() {
		var session workout.Session
		if err := rows.Scan(&session.ID, &session.StartedAt, &session.EndedAt, &session.DurationSeconds, &session.TotalSets, &session.IntervalSeconds); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	return sessions, nil
}

// Stats aggregates workouts started at or after since.
func (store *HistoryStore) Stats(ctx context.Context, since time.Time) (HistoryStats, error) {
	var stats HistoryStats
	err := store.db.QueryRowContext(ctx, `
        SELECT
            COUNT(*),
            COALESCE(SUM(total_sets), 0),
            COALESCE(SUM(duration_seconds), 0)
        FROM workouts
        WHERE started_at >= ?
    `, since.UTC()).Scan(&stats.Workouts, &stats.TotalSets, &stats.TotalSeconds)
	if err != nil {
		return HistoryStats{}, fmt.Errorf("query workout stats: %w", err)
	}
	return stats, nil
}
