package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequenceCounter manages the global monotonic sequence number shared by
// audit entries and lifecycle events. Each lives in its own table, so
// per-table auto-increment IDs can't establish cross-table ordering. The
// shared counter gives every row a single increasing sequence, enabling:
//
//   - Cross-table ordering (did the event follow the audit entry?)
//   - Incremental reads (query for sequence > last seen)
//   - Append-only guarantees (rows are never reordered)
//
// Uses raw SQL because ent's query builders have no atomic counter. The
// RETURNING clause makes the increment atomic at the database level, and
// callers pass the transaction that also writes the row so a rolled-back
// write never consumes a number.
type sequenceCounter struct {
	db *sql.DB
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the
// counter within q. A nil q uses the database directly.
func (sc *sequenceCounter) Next(ctx context.Context, q rowQuerier) (int64, error) {
	if q == nil {
		q = sc.db
	}
	var seq int64
	err := q.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
