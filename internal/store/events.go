package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/talentloop/internal/lifecycle"
)

// EventLog is a lifecycle.EventSink that appends every event to the
// lifecycle_events table so it can be inspected or replayed later.
type EventLog struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Publish appends ev to the log.
func (l *EventLog) Publish(ctx context.Context, ev lifecycle.Event) (err error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	seqNum, err := l.seq.Next(ctx, tx)
	if err != nil {
		return err
	}

	var score sql.NullInt64
	if ev.Score != nil {
		score = sql.NullInt64{Int64: int64(ev.Score.Overall), Valid: true}
	}

	query, args := builder().
		Insert(eventsTable.Name).
		Columns("sequence", "timestamp", "type", "record_id", "kind", "from_state", "to_state", "actor", "score_overall").
		Values(seqNum, ev.OccurredAt, string(ev.Type), ev.RecordID, string(ev.Kind),
			nullString(string(ev.From)), nullString(string(ev.To)), nullString(ev.Actor), score).
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save lifecycle event: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit lifecycle event: %w", err)
	}
	return nil
}

// Query returns events newest first.
func (l *EventLog) Query(ctx context.Context, opts QueryOpts) ([]EventRecord, error) {
	sel := builder().
		Select("sequence", "timestamp", "type", "record_id", "kind", "from_state", "to_state", "actor", "score_overall").
		From(entsql.Table(eventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.RecordID != "" {
		sel.Where(entsql.EQ("record_id", opts.RecordID))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lifecycle events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var (
			rec             EventRecord
			typ, kind       string
			from, to, actor sql.NullString
			score           sql.NullInt64
		)
		if err := rows.Scan(&rec.Sequence, &rec.OccurredAt, &typ, &rec.RecordID, &kind,
			&from, &to, &actor, &score); err != nil {
			return nil, fmt.Errorf("scan lifecycle event: %w", err)
		}
		rec.Type = lifecycle.EventType(typ)
		rec.Kind = lifecycle.Kind(kind)
		rec.From = lifecycle.State(from.String)
		rec.To = lifecycle.State(to.String)
		rec.Actor = actor.String
		if score.Valid {
			v := int(score.Int64)
			rec.ScoreOverall = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
