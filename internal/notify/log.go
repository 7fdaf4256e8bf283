package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abhisek/talentloop/internal/lifecycle"
)

// LogSink writes each event as a structured log line.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a LogSink writing to log.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "events").Logger()}
}

// Publish logs ev at info level. It never fails.
func (s *LogSink) Publish(_ context.Context, ev lifecycle.Event) error {
	e := s.log.Info().
		Str("type", string(ev.Type)).
		Str("record_id", ev.RecordID).
		Str("kind", string(ev.Kind)).
		Time("occurred_at", ev.OccurredAt)
	if ev.Type == lifecycle.EventStateChanged {
		e = e.Str("from", string(ev.From)).Str("to", string(ev.To)).Str("actor", ev.Actor)
	}
	if ev.Score != nil {
		e = e.Int("score", ev.Score.Overall)
	}
	e.Msg("lifecycle event")
	return nil
}
