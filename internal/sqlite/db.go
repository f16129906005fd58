package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New opens the database at path, creating its directory. ":memory:" opens
// an in-memory database.
func New(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer; also keeps ":memory:" on one connection.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. It is safe to run on every start.
// Instants are stored as unix nanoseconds and durations as nanoseconds.
func (db *DB) RunMigrations() error {
	migration := `
-- Single-row schedule
CREATE TABLE IF NOT EXISTS schedule (
    id INTEGER PRIMARY KEY CHECK(id = 1),
    sitting_duration INTEGER NOT NULL,
    standing_duration INTEGER NOT NULL,
    notifications_enabled INTEGER NOT NULL,
    sound_enabled INTEGER NOT NULL,
    auto_start INTEGER NOT NULL,
    ask_before_transition INTEGER NOT NULL,
    snooze_duration INTEGER NOT NULL,
    work_start_time TEXT NOT NULL,
    work_end_time TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Session log
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    phase TEXT NOT NULL CHECK(phase IN ('sitting', 'standing')),
    start_date INTEGER NOT NULL,
    end_date INTEGER,
    duration INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_position ON sessions(position);

-- Statistics-of-record intervals
CREATE TABLE IF NOT EXISTS phase_transitions (
    id TEXT PRIMARY KEY,
    from_phase TEXT NOT NULL,
    to_phase TEXT NOT NULL,
    start_date INTEGER NOT NULL,
    end_date INTEGER,
    duration INTEGER NOT NULL DEFAULT 0,
    was_paused INTEGER NOT NULL DEFAULT 0,
    pause_duration INTEGER NOT NULL DEFAULT 0,
    pause_started_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_transitions_start ON phase_transitions(start_date);
CREATE INDEX IF NOT EXISTS idx_transitions_open ON phase_transitions(end_date);

-- Per-day totals keyed by local calendar day
CREATE TABLE IF NOT EXISTS daily_statistics (
    date TEXT PRIMARY KEY,
    sitting_duration INTEGER NOT NULL DEFAULT 0,
    standing_duration INTEGER NOT NULL DEFAULT 0,
    paused_duration INTEGER NOT NULL DEFAULT 0,
    number_of_transitions INTEGER NOT NULL DEFAULT 0,
    last_updated INTEGER NOT NULL
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func toUnix(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n)
}

func nullableTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func timePtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromUnix(n.Int64)
	return &t
}
