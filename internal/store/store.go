// Package store persists ingested articles, issued quizzes and graded
// attempts in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Articles returns an ArticleRepo backed by this store.
func (s *Store) Articles() ArticleRepo {
	return &articleRepo{db: s.db}
}

// Quizzes returns a QuizRepo backed by this store.
func (s *Store) Quizzes() QuizRepo {
	return &quizRepo{db: s.db}
}

// Attempts returns an AttemptRepo backed by this store.
func (s *Store) Attempts() AttemptRepo {
	return &attemptRepo{db: s.db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		language TEXT NOT NULL,
		source TEXT NOT NULL,
		action TEXT NOT NULL,
		sections INTEGER NOT NULL DEFAULT 0,
		fetched_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_fetched_at ON articles (fetched_at)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		language TEXT NOT NULL,
		questions TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id TEXT PRIMARY KEY,
		quiz_id TEXT REFERENCES quizzes (id) ON DELETE SET NULL,
		source TEXT NOT NULL,
		score REAL NOT NULL,
		total_questions INTEGER NOT NULL,
		correct_answers INTEGER NOT NULL,
		status TEXT NOT NULL,
		submitted_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_attempts_source ON quiz_attempts (source, submitted_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for a single-process workload.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. WIKISMART_DB environment variable
// 2. $XDG_DATA_HOME/wikismart/wikismart.db
// 3. ~/.local/share/wikismart/wikismart.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("WIKISMART_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "wikismart", "wikismart.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
