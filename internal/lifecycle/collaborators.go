package lifecycle

import (
	"context"
	"time"

	"github.com/abhisek/talentloop/internal/scoring"
)

// Repository persists records with an optimistic version check.
type Repository interface {
	// Load returns the record with its full audit trail, or an error
	// matching ErrNotFound.
	Load(ctx context.Context, id string) (*Record, error)

	// Save writes rec if the stored version equals expectedVersion and
	// stores rec.Version as the new version. An expectedVersion of zero
	// inserts a new record. A stale version yields an error matching
	// ErrVersionConflict.
	Save(ctx context.Context, rec *Record, expectedVersion int64) error
}

// Event describes a committed mutation for downstream notification.
type Event struct {
	Type       EventType
	RecordID   string
	Kind       Kind
	From       State  // set for EventStateChanged
	To         State  // set for EventStateChanged
	Score      *Score // set for EventScoreUpdated
	Actor      string
	OccurredAt time.Time
}

// EventSink receives lifecycle events. Delivery and retries are the
// sink's concern.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Publish(ctx context.Context, ev Event) error { return f(ctx, ev) }

type nopSink struct{}

func (nopSink) Publish(context.Context, Event) error { return nil }

// AuthorizationGate decides whether actor may move rec to the given state.
// Engine never consults it; callers run it before RequestTransition.
type AuthorizationGate interface {
	Authorize(ctx context.Context, actor string, rec *Record, to State) error
}

// AllowAll is an AuthorizationGate that permits every request.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, string, *Record, State) error { return nil }

// SnapshotProvider supplies scoring inputs for a record. Engine never
// fetches snapshots itself; callers pass the result to Create or Recompute.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, rec *Record) (scoring.Snapshot, error)
}
