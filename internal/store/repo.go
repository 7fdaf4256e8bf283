package store

import "github.com/abhisek/talentloop/internal/lifecycle"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int    // max results (0 = unlimited)
	After    int64  // sequence > After
	RecordID string // only events for this record
}

// Filter narrows record listings.
type Filter struct {
	Kind  lifecycle.Kind  // empty = all kinds
	State lifecycle.State // empty = all states
	Limit int             // max results (0 = unlimited)
}

// EventRecord is a persisted lifecycle event.
type EventRecord struct {
	Sequence int64
	lifecycle.Event
	ScoreOverall *int
}

// Compile-time checks that the store satisfies the engine's collaborators.
var (
	_ lifecycle.Repository = (*RecordRepo)(nil)
	_ lifecycle.EventSink  = (*EventLog)(nil)
)
