package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/theopenlane/ecolens/internal/scoring"
)

// dbFileName is the name of the SQLite database file inside the cache directory
const dbFileName = "ecolens.db"

// SQLiteStore is a persistent Store backed by a single SQLite file. It is
// the production cache shared across companion processes on the same host.
type SQLiteStore struct {
	// db is the underlying SQL database connection
	db *sql.DB
	// dbPath is the path to the SQLite database file
	dbPath string
}

// OpenSQLite opens or creates a SQLiteStore under the given directory.
// The directory is created when missing.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	dbPath := filepath.Join(dir, dbFileName)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY churn between the orchestrator and annotator paths.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: enabling WAL: %v", ErrOpenFailed, err)
	}

	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrOpenFailed, err)
	}

	return store, nil
}

// createTables creates the cache schema if it does not exist
func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		url TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := s.db.Exec(schema)

	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the stored entries for the given URLs
func (s *SQLiteStore) Get(ctx context.Context, keys ...string) (map[string]scoring.AnalysisResult, error) {
	found := make(map[string]scoring.AnalysisResult, len(keys))

	if len(keys) == 0 {
		return found, nil
	}

	placeholders := strings.Repeat("?,", len(keys))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, key)
	}

	query := fmt.Sprintf("SELECT url, payload FROM results WHERE url IN (%s)", placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			url     string
			payload string
		)

		if err := rows.Scan(&url, &payload); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}

		var result scoring.AnalysisResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			// A corrupt row degrades to a miss rather than failing the batch
			continue
		}

		found[url] = result
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cache rows: %w", err)
	}

	return found, nil
}

// Set stores the given entries, overwriting existing values
func (s *SQLiteStore) Set(ctx context.Context, entries map[string]scoring.AnalysisResult) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cache write: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (url, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(url) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("preparing cache write: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for url, entry := range entries {
		payload, err := json.Marshal(entry)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encoding cache entry for %s: %w", url, err)
		}

		if _, err := stmt.ExecContext(ctx, url, string(payload)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("writing cache entry for %s: %w", url, err)
		}
	}

	return tx.Commit()
}
