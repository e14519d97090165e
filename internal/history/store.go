package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tubeclip/internal/config"
)

// ErrNotFound is returned when an entry ID does not exist.
var ErrNotFound = errors.New("history entry not found")

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond

	entryColumns = "id, run_id, source_url, video_id, title, category, kind, output_path, status, error_message, created_at, updated_at"
)

// Open initializes or connects to the ledger at cfg.HistoryPath().
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Begin records a new running entry and returns it with ID and timestamps set.
func (s *Store) Begin(ctx context.Context, entry Entry) (*Entry, error) {
	if strings.TrimSpace(entry.SourceURL) == "" {
		return nil, errors.New("history entry requires a source url")
	}
	if entry.Kind == "" {
		return nil, errors.New("history entry requires a kind")
	}
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(ctx,
		`INSERT INTO history_entries (
            run_id, source_url, video_id, title, category, kind, output_path,
            status, error_message, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)`,
		entry.RunID,
		entry.SourceURL,
		nullableString(entry.VideoID),
		nullableString(entry.Title),
		nullableString(entry.Category),
		string(entry.Kind),
		nullableString(entry.OutputPath),
		string(StatusRunning),
		stamp,
		stamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	entry.ID = id
	entry.Status = StatusRunning
	entry.ErrorMessage = ""
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return &entry, nil
}

// Complete marks an entry completed. A non-empty outputPath replaces the
// recorded one.
func (s *Store) Complete(ctx context.Context, id int64, outputPath string) error {
	return s.finish(ctx, id, StatusCompleted, outputPath, "")
}

// Fail marks an entry failed and stores the error text.
func (s *Store) Fail(ctx context.Context, id int64, cause error) error {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return s.finish(ctx, id, StatusFailed, "", msg)
}

func (s *Store) finish(ctx context.Context, id int64, status Status, outputPath, message string) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE history_entries
         SET status = ?, output_path = COALESCE(?, output_path), error_message = ?, updated_at = ?
         WHERE id = ?`,
		string(status),
		nullableString(outputPath),
		nullableString(message),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("update history entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// Get fetches one entry by ID.
func (s *Store) Get(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM history_entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return entry, nil
}

// List returns entries newest first, optionally filtered by status. A limit
// of 0 or less returns every match.
func (s *Store) List(ctx context.Context, limit int, statuses ...Status) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM history_entries`
	args := make([]any, 0, len(statuses)+1)
	if len(statuses) > 0 {
		query += ` WHERE status IN (` + makePlaceholders(len(statuses)) + `)`
		for _, status := range statuses {
			args = append(args, string(status))
		}
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListRun returns every entry recorded under runID in insertion order.
func (s *Store) ListRun(ctx context.Context, runID string) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM history_entries WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run %s: %w", runID, err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear deletes entries, optionally only those in the given statuses, and
// returns the number removed.
func (s *Store) Clear(ctx context.Context, statuses ...Status) (int64, error) {
	query := `DELETE FROM history_entries`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += ` WHERE status IN (` + makePlaceholders(len(statuses)) + `)`
		for _, status := range statuses {
			args = append(args, string(status))
		}
	}
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns a count of entries grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM history_entries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("history stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[Status(status)] = count
	}
	return stats, rows.Err()
}
