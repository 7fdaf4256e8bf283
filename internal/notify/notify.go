package notify

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/talentloop/internal/lifecycle"
)

// Message is the wire form of a lifecycle event.
type Message struct {
	Type       string         `json:"type"`
	RecordID   string         `json:"record_id"`
	Kind       string         `json:"kind"`
	From       string         `json:"from,omitempty"`
	To         string         `json:"to,omitempty"`
	Score      *int           `json:"score,omitempty"`
	Dimensions map[string]int `json:"dimensions,omitempty"`
	Actor      string         `json:"actor,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewMessage converts ev to its wire form.
func NewMessage(ev lifecycle.Event) Message {
	m := Message{
		Type:       string(ev.Type),
		RecordID:   ev.RecordID,
		Kind:       string(ev.Kind),
		From:       string(ev.From),
		To:         string(ev.To),
		Actor:      ev.Actor,
		OccurredAt: ev.OccurredAt,
	}
	if ev.Score != nil {
		overall := ev.Score.Overall
		m.Score = &overall
		m.Dimensions = ev.Score.Dimensions
	}
	return m
}

// Fanout publishes every event to each of its sinks in order.
type Fanout []lifecycle.EventSink

// Publish delivers ev to all sinks. A failing sink does not stop delivery
// to the rest; the joined errors are returned.
func (f Fanout) Publish(ctx context.Context, ev lifecycle.Event) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ lifecycle.EventSink = Fanout(nil)
	_ lifecycle.EventSink = (*LogSink)(nil)
	_ lifecycle.EventSink = (*RedisSink)(nil)
)
