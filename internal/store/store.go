package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"lingoview/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    media TEXT NOT NULL,
    source_hash TEXT NOT NULL,
    language TEXT NOT NULL,
    translation_language TEXT NOT NULL DEFAULT '',
    segment_count INTEGER NOT NULL DEFAULT 0,
    metadata_path TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_source_hash ON runs(source_hash);
`

// Run is one recorded generation.
type Run struct {
	ID                  int64
	CreatedAt           time.Time
	Media               string
	SourceHash          string
	Language            string
	TranslationLanguage string
	SegmentCount        int
	MetadataPath        string
}

// Store manages run persistence backed by SQLite plus the storage lock.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open connects to the run database under the storage directory, applies
// the schema, and acquires the storage lock. A second concurrent instance
// fails fast instead of corrupting shared chunk state.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.StorageDir, "lingoview.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire storage lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another lingoview instance is already using this storage directory")
	}

	dbPath := filepath.Join(cfg.Paths.StorageDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
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
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath, lock: lock}, nil
}

// Close releases the database and the storage lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RecordRun inserts a completed run and returns its id.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, media, source_hash, language, translation_language, segment_count, metadata_path)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano),
		run.Media,
		run.SourceHash,
		run.Language,
		run.TranslationLanguage,
		run.SegmentCount,
		run.MetadataPath,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read run id: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, media, source_hash, language, translation_language, segment_count, metadata_path
         FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindRun returns the most recent run matching the media hash and target
// language, if any.
func (s *Store) FindRun(ctx context.Context, sourceHash, translationLanguage string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, media, source_hash, language, translation_language, segment_count, metadata_path
         FROM runs WHERE source_hash = ? AND translation_language = ? ORDER BY id DESC LIMIT 1`,
		sourceHash, translationLanguage)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	if err := row.Scan(&run.ID, &createdAt, &run.Media, &run.SourceHash, &run.Language,
		&run.TranslationLanguage, &run.SegmentCount, &run.MetadataPath); err != nil {
		return Run{}, err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		run.CreatedAt = parsed
	}
	return run, nil
}
