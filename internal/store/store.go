package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/rs/zerolog"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
	log zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas, runs auto-migration and checks the
// stored schema version.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer. One connection turns concurrent
	// writers into a queue instead of SQLITE_BUSY errors, and keeps the
	// per-connection pragmas in effect.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{
		db:  db,
		drv: entsql.OpenDB(dialect.SQLite, db),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx := context.Background()
	if err := migrate(ctx, s.drv); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	s.seq, err = newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	version, err := checkSchemaVersion(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	s.log.Debug().Str("dsn", dsn).Str("schema_version", version).Msg("store opened")
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// RecordRepo returns the lifecycle record repository backed by this store.
func (s *Store) RecordRepo() *RecordRepo {
	return &RecordRepo{db: s.db, seq: s.seq}
}

// EventLog returns the persistent lifecycle event log backed by this store.
func (s *Store) EventLog() *EventLog {
	return &EventLog{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for a single-process service.
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
// 1. TALENTLOOP_DB environment variable
// 2. $XDG_DATA_HOME/talentloop/talentloop.db
// 3. ~/.local/share/talentloop/talentloop.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TALENTLOOP_DB"); p != "" {
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

	p := filepath.Join(dataHome, "talentloop", "talentloop.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
