// Package history records completed work sessions and breaks in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileName is the database file name inside the application directory.
const FileName = "history.db"

// Entry is one completed phase.
type Entry struct {
	ID             string
	Phase          string
	Session        int
	PlannedSeconds int
	CompletedAt    time.Time
}

// Store persists entries.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*Store, error) {
	database, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(database); err != nil {
		_ = database.Close()
		return nil, err
	}
	return &Store{db: database}, nil
}

// Close closes the database.
func (store *Store) Close() error {
	return store.db.Close()
}

// Append stores entry, assigning an id when it has none.
func (store *Store) Append(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now()
	}

	_, err := store.db.ExecContext(
		ctx,
		`INSERT INTO completed_phases (id, phase, session, planned_seconds, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Phase,
		entry.Session,
		entry.PlannedSeconds,
		entry.CompletedAt.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert completed phase: %w", err)
	}
	return entry, nil
}

// CountSince counts entries of phase completed at or after since.
func (store *Store) CountSince(ctx context.Context, phase string, since time.Time) (int, error) {
	var count int
	if err := store.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM completed_phases WHERE phase = ? AND completed_at >= ?`,
		phase,
		since.UnixMilli(),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completed phases: %w", err)
	}
	return count, nil
}

// Recent returns up to limit entries, newest first.
func (store *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := store.db.QueryContext(
		ctx,
		`SELECT id, phase, session, planned_seconds, completed_at
		 FROM completed_phases
		 ORDER BY completed_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list completed phases: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var completedAt int64
		if err := rows.Scan(&entry.ID, &entry.Phase, &entry.Session, &entry.PlannedSeconds, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completed phase: %w", err)
		}
		entry.CompletedAt = time.UnixMilli(completedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed phases: %w", err)
	}
	return entries, nil
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
