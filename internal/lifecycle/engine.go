package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/talentloop/internal/scoring"
)

// scoreOnCreate lists the kinds whose score is computed when the record is
// created. Mentorship progress starts uncomputed and follows milestones.
var scoreOnCreate = map[Kind]bool{
	KindApplication: true,
}

// Engine is the only writer of record state, score and audit trail.
// It is safe for concurrent use; concurrent writes to the same record are
// linearized by the repository's version check.
type Engine struct {
	repo        Repository
	sink        EventSink
	now         func() time.Time
	newID       func() string
	log         zerolog.Logger
	calculators map[Kind]scoring.Calculator
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the EventSink notified after each committed mutation.
func WithSink(s EventSink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithCalculator replaces the score calculator for kind.
func WithCalculator(kind Kind, c scoring.Calculator) Option {
	return func(e *Engine) { e.calculators[kind] = c }
}

// NewEngine creates an engine persisting through repo.
func NewEngine(repo Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:  repo,
		sink:  nopSink{},
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		log:   zerolog.Nop(),
		calculators: map[Kind]scoring.Calculator{
			KindApplication: scoring.ApplicationCalculator{},
			KindMentorship:  scoring.MentorshipCalculator{},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches a record from the repository.
func (e *Engine) Load(ctx context.Context, id string) (*Record, error) {
	rec, err := e.repo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", id, err)
	}
	return rec, nil
}

// Create starts a new record in its kind's initial state and persists it.
// Applications are scored from snap immediately; the score is not
// refreshed later unless Recompute is called.
func (e *Engine) Create(ctx context.Context, kind Kind, subjectRef, counterpartyRef string, snap scoring.Snapshot) (*Record, error) {
	initial, err := InitialState(kind)
	if err != nil {
		return nil, err
	}
	if subjectRef == "" || counterpartyRef == "" {
		return nil, ErrMissingReference
	}

	now := e.now()
	rec := &Record{
		ID:              e.newID(),
		Kind:            kind,
		SubjectRef:      subjectRef,
		CounterpartyRef: counterpartyRef,
		State:           initial,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if scoreOnCreate[kind] {
		result, err := e.compute(kind, snap)
		if err != nil {
			return nil, err
		}
		rec.Score = scoreFrom(result, now)
	}

	if err := e.save(ctx, "create", rec, 0); err != nil {
		return nil, err
	}

	e.log.Debug().
		Str("record_id", rec.ID).
		Str("kind", string(kind)).
		Str("state", string(initial)).
		Msg("record created")
	return rec, nil
}

// RequestTransition moves rec to state to on behalf of actor. The
// returned record is a new value; rec itself is never modified. An
// illegal target fails with *IllegalTransitionError, a lost race with
// *ConcurrentModificationError.
func (e *Engine) RequestTransition(ctx context.Context, rec *Record, to State, actor, note string) (*Record, error) {
	if err := checkPersisted(rec); err != nil {
		return nil, err
	}
	ok, err := CanTransition(rec.Kind, rec.State, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &IllegalTransitionError{Kind: rec.Kind, From: rec.State, To: to}
	}
	if actor == "" {
		return nil, ErrMissingActor
	}

	now := e.now()
	next := rec.Clone()
	next.State = to
	next.Audit.append(AuditEntry{
		Timestamp: now,
		Actor:     actor,
		From:      rec.State,
		To:        to,
		Note:      note,
	})
	next.UpdatedAt = now
	next.Version = rec.Version + 1

	if err := e.save(ctx, "transition", next, rec.Version); err != nil {
		return nil, err
	}

	e.log.Info().
		Str("record_id", rec.ID).
		Str("kind", string(rec.Kind)).
		Str("from", string(rec.State)).
		Str("to", string(to)).
		Str("actor", actor).
		Msg("state changed")

	e.publish(ctx, Event{
		Type:       EventStateChanged,
		RecordID:   rec.ID,
		Kind:       rec.Kind,
		From:       rec.State,
		To:         to,
		Actor:      actor,
		OccurredAt: now,
	})
	return next, nil
}

// Recompute rescores rec from a fresh snapshot. State and audit trail are
// left untouched.
func (e *Engine) Recompute(ctx context.Context, rec *Record, snap scoring.Snapshot) (*Record, error) {
	if err := checkPersisted(rec); err != nil {
		return nil, err
	}
	if err := checkDeclared(rec); err != nil {
		return nil, err
	}
	result, err := e.compute(rec.Kind, snap)
	if err != nil {
		return nil, err
	}

	now := e.now()
	next := rec.Clone()
	next.Score = scoreFrom(result, now)
	next.UpdatedAt = now
	next.Version = rec.Version + 1

	if err := e.save(ctx, "recompute", next, rec.Version); err != nil {
		return nil, err
	}

	score := next.Score
	score.Dimensions = maps.Clone(score.Dimensions)
	e.publish(ctx, Event{
		Type:       EventScoreUpdated,
		RecordID:   rec.ID,
		Kind:       rec.Kind,
		Score:      &score,
		OccurredAt: now,
	})
	return next, nil
}

// Annotate records a note against the current state without changing it.
func (e *Engine) Annotate(ctx context.Context, rec *Record, actor, note string) (*Record, error) {
	if err := checkPersisted(rec); err != nil {
		return nil, err
	}
	if err := checkDeclared(rec); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, ErrMissingActor
	}

	now := e.now()
	next := rec.Clone()
	next.Audit.append(AuditEntry{
		Timestamp: now,
		Actor:     actor,
		From:      rec.State,
		To:        rec.State,
		Note:      note,
	})
	next.UpdatedAt = now
	next.Version = rec.Version + 1

	if err := e.save(ctx, "annotate", next, rec.Version); err != nil {
		return nil, err
	}
	return next, nil
}

// checkPersisted rejects records that did not come from Create or Load.
// Saving one would take the repository's insert path and skip the initial
// state.
func checkPersisted(rec *Record) error {
	if rec == nil {
		return errors.New("nil record")
	}
	if rec.Version < 1 {
		return fmt.Errorf("record %s: %w", rec.ID, ErrNotPersisted)
	}
	return nil
}

// checkDeclared rejects records whose kind or state is not in the tables.
func checkDeclared(rec *Record) error {
	if IsDeclared(rec.Kind, rec.State) {
		return nil
	}
	if _, err := lookup(rec.Kind); err != nil {
		return err
	}
	return &UnknownStateError{Kind: rec.Kind, State: rec.State}
}

func (e *Engine) compute(kind Kind, snap scoring.Snapshot) (scoring.Result, error) {
	calc, ok := e.calculators[kind]
	if !ok {
		return scoring.Result{}, &UnknownKindError{Kind: kind}
	}
	return calc.Compute(snap)
}

// save persists rec and classifies repository failures.
func (e *Engine) save(ctx context.Context, op string, rec *Record, expectedVersion int64) error {
	err := e.repo.Save(ctx, rec, expectedVersion)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrVersionConflict):
		return &ConcurrentModificationError{RecordID: rec.ID, ExpectedVersion: expectedVersion, Err: err}
	default:
		return &PersistenceError{Op: op, RecordID: rec.ID, Err: err}
	}
}

// publish notifies the sink. The mutation is already durable, so a
// failure is logged and dropped.
func (e *Engine) publish(ctx context.Context, ev Event) {
	if err := e.sink.Publish(ctx, ev); err != nil {
		e.log.Warn().
			Err(err).
			Str("record_id", ev.RecordID).
			Str("event", string(ev.Type)).
			Msg("publish lifecycle event")
	}
}
