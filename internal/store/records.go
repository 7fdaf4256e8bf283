package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/talentloop/internal/lifecycle"
)

// RecordRepo implements lifecycle.Repository on SQLite. Records are
// updated in place under an optimistic version check; audit entries are
// insert-only.
type RecordRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var recordFields = []string{
	"id", "kind", "subject_ref", "counterparty_ref", "state",
	"score_overall", "score_dimensions", "score_computed_at",
	"version", "created_at", "updated_at",
}

var auditFields = []string{"seq", "timestamp", "actor", "from_state", "to_state", "note"}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Load returns the record with its audit trail in insertion order.
func (r *RecordRepo) Load(ctx context.Context, id string) (*lifecycle.Record, error) {
	query, args := builder().
		Select(recordFields...).
		From(entsql.Table(recordsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %s: %w", id, lifecycle.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query record: %w", err)
	}

	entries, err := r.loadAudit(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Audit = lifecycle.NewAuditTrail(entries)
	return rec, nil
}

// Save inserts rec when expectedVersion is zero and otherwise updates it
// only if the stored version still equals expectedVersion. New audit
// entries are appended in the same transaction.
func (r *RecordRepo) Save(ctx context.Context, rec *lifecycle.Record, expectedVersion int64) (err error) {
	if rec.Version <= expectedVersion {
		return fmt.Errorf("save record %s: version %d does not advance %d", rec.ID, rec.Version, expectedVersion)
	}
	dims, err := encodeDimensions(rec.Score.Dimensions)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if expectedVersion == 0 {
		err = insertRecord(ctx, tx, rec, dims)
	} else {
		err = updateRecord(ctx, tx, rec, dims, expectedVersion)
	}
	if err != nil {
		return err
	}

	if err = r.appendAudit(ctx, tx, rec); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit record %s: %w", rec.ID, err)
	}
	return nil
}

// List returns records matching f, most recently updated first.
func (r *RecordRepo) List(ctx context.Context, f Filter) ([]*lifecycle.Record, error) {
	sel := builder().
		Select(recordFields...).
		From(entsql.Table(recordsTable.Name)).
		OrderBy(entsql.Desc("updated_at"), entsql.Asc("id"))
	if f.Kind != "" {
		sel.Where(entsql.EQ("kind", string(f.Kind)))
	}
	if f.State != "" {
		sel.Where(entsql.EQ("state", string(f.State)))
	}
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	var records []*lifecycle.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range records {
		entries, err := r.loadAudit(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Audit = lifecycle.NewAuditTrail(entries)
	}
	return records, nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, rec *lifecycle.Record, dims sql.NullString) error {
	exists, err := recordExists(ctx, tx, rec.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("insert record %s: %w", rec.ID, lifecycle.ErrVersionConflict)
	}

	query, args := builder().
		Insert(recordsTable.Name).
		Columns(recordFields...).
		Values(
			rec.ID, string(rec.Kind), rec.SubjectRef, rec.CounterpartyRef, string(rec.State),
			rec.Score.Overall, dims, nullTime(rec.Score.ComputedAt),
			rec.Version, rec.CreatedAt, rec.UpdatedAt,
		).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert record %s: %w", rec.ID, err)
	}
	return nil
}

func updateRecord(ctx context.Context, tx *sql.Tx, rec *lifecycle.Record, dims sql.NullString, expectedVersion int64) error {
	query, args := builder().
		Update(recordsTable.Name).
		Set("state", string(rec.State)).
		Set("score_overall", rec.Score.Overall).
		Set("score_dimensions", dims).
		Set("score_computed_at", nullTime(rec.Score.ComputedAt)).
		Set("version", rec.Version).
		Set("updated_at", rec.UpdatedAt).
		Where(entsql.And(
			entsql.EQ("id", rec.ID),
			entsql.EQ("version", expectedVersion),
		)).
		Query()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update record %s: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record %s: %w", rec.ID, err)
	}
	if n == 1 {
		return nil
	}

	exists, err := recordExists(ctx, tx, rec.ID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("update record %s: %w", rec.ID, lifecycle.ErrNotFound)
	}
	return fmt.Errorf("update record %s at version %d: %w", rec.ID, expectedVersion, lifecycle.ErrVersionConflict)
}

// appendAudit inserts the entries of rec's trail that are not stored yet.
func (r *RecordRepo) appendAudit(ctx context.Context, tx *sql.Tx, rec *lifecycle.Record) error {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(auditTable.Name)).
		Where(entsql.EQ("record_id", rec.ID)).
		Query()
	var stored int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&stored); err != nil {
		return fmt.Errorf("count audit entries: %w", err)
	}

	entries := rec.Audit.Entries()
	if len(entries) < stored {
		return fmt.Errorf("audit trail of %s has %d entries, %d stored: entries cannot be removed",
			rec.ID, len(entries), stored)
	}

	for _, e := range entries[stored:] {
		seqNum, err := r.seq.Next(ctx, tx)
		if err != nil {
			return err
		}
		query, args := builder().
			Insert(auditTable.Name).
			Columns("sequence", "record_id", "seq", "timestamp", "actor", "from_state", "to_state", "note").
			Values(seqNum, rec.ID, e.Seq, e.Timestamp, e.Actor, string(e.From), string(e.To), e.Note).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert audit entry %d of %s: %w", e.Seq, rec.ID, err)
		}
	}
	return nil
}

func (r *RecordRepo) loadAudit(ctx context.Context, id string) ([]lifecycle.AuditEntry, error) {
	query, args := builder().
		Select(auditFields...).
		From(entsql.Table(auditTable.Name)).
		Where(entsql.EQ("record_id", id)).
		OrderBy("seq").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []lifecycle.AuditEntry
	for rows.Next() {
		var (
			e        lifecycle.AuditEntry
			from, to string
		)
		if err := rows.Scan(&e.Seq, &e.Timestamp, &e.Actor, &from, &to, &e.Note); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.From, e.To = lifecycle.State(from), lifecycle.State(to)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func recordExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	query, args := builder().
		Select("id").
		From(entsql.Table(recordsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	var found string
	err := tx.QueryRowContext(ctx, query, args...).Scan(&found)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check record %s: %w", id, err)
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*lifecycle.Record, error) {
	var (
		rec         lifecycle.Record
		kind, state string
		dims        sql.NullString
		computedAt  sql.NullTime
	)
	err := row.Scan(
		&rec.ID, &kind, &rec.SubjectRef, &rec.CounterpartyRef, &state,
		&rec.Score.Overall, &dims, &computedAt,
		&rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Kind = lifecycle.Kind(kind)
	rec.State = lifecycle.State(state)
	if computedAt.Valid {
		rec.Score.ComputedAt = computedAt.Time
	}
	if dims.Valid && dims.String != "" {
		if err := json.Unmarshal([]byte(dims.String), &rec.Score.Dimensions); err != nil {
			return nil, fmt.Errorf("decode score dimensions of %s: %w", rec.ID, err)
		}
	}
	return &rec, nil
}

func encodeDimensions(dims map[string]int) (sql.NullString, error) {
	if dims == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(dims)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode score dimensions: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
