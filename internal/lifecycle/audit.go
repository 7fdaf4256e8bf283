package lifecycle

import "time"

// AuditEntry is one transition or annotation on a record.
type AuditEntry struct {
	Seq       int // 1-based position in the trail
	Timestamp time.Time
	Actor     string
	From      State
	To        State
	Note      string
}

// IsAnnotation reports whether the entry is a note rather than a transition.
func (e AuditEntry) IsAnnotation() bool { return e.From == e.To }

// AuditTrail is the ordered, append-only history of a record. The zero
// value is an empty trail.
type AuditTrail struct {
	entries []AuditEntry
}

// NewAuditTrail rebuilds a trail from stored entries, which must already be
// in insertion order. Repositories use it when loading records.
func NewAuditTrail(entries []AuditEntry) AuditTrail {
	return AuditTrail{entries: append([]AuditEntry(nil), entries...)}
}

// Len returns the number of entries.
func (a AuditTrail) Len() int { return len(a.entries) }

// Entries returns a copy of every entry in insertion order.
func (a AuditTrail) Entries() []AuditEntry {
	return append([]AuditEntry(nil), a.entries...)
}

// Last returns a copy of the most recent n entries, oldest first.
func (a AuditTrail) Last(n int) []AuditEntry {
	if n <= 0 {
		return nil
	}
	if n > len(a.entries) {
		n = len(a.entries)
	}
	return append([]AuditEntry(nil), a.entries[len(a.entries)-n:]...)
}

// append adds e to the end of the trail, assigning its sequence number.
// Timestamps never run backwards: an entry stamped earlier than its
// predecessor takes the predecessor's timestamp.
func (a *AuditTrail) append(e AuditEntry) AuditEntry {
	e.Seq = len(a.entries) + 1
	if n := len(a.entries); n > 0 && e.Timestamp.Before(a.entries[n-1].Timestamp) {
		e.Timestamp = a.entries[n-1].Timestamp
	}
	a.entries = append(a.entries, e)
	return e
}
