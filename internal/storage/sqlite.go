package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SQLiteStore keeps the record in a SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db, key: DefaultRecordKey}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			initials TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the stored record, or the zero record if none exists.
func (s *SQLiteStore) Load(ctx context.Context) (snake.BestScore, error) {
	var rec snake.BestScore
	var updatedAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT score, initials, updated_at FROM best_scores WHERE game_id = ?",
		s.key,
	).Scan(&rec.Score, &rec.Initials, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return snake.BestScore{}, nil
	}
	if err != nil {
		return snake.BestScore{}, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	rec.UpdatedAt = parseTime(updatedAt)
	return rec, nil
}

// Save writes rec if its score is strictly greater than the stored one.
// The comparison happens inside the statement, so concurrent sessions
// sharing the file cannot overwrite a higher record.
func (s *SQLiteStore) Save(ctx context.Context, rec snake.BestScore) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO best_scores (game_id, score, initials, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   score = excluded.score,
		   initials = excluded.initials,
		   updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		s.key, rec.Score, rec.Initials, rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// Reset deletes the record.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM best_scores WHERE game_id = ?", s.key)
	if err != nil {
		return fmt.Errorf("storage: cannot reset best score: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string layouts SQLite hands back.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// Ensure SQLiteStore implements the engine's store interface
var _ Store = (*SQLiteStore)(nil)
