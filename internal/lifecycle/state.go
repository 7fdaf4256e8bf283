package lifecycle

import "strings"

// Kind selects which transition table and score calculator apply to a record.
type Kind string

const (
	KindApplication Kind = "application"
	KindMentorship  Kind = "mentorship"
)

// State is a record's position in its kind's lifecycle.
type State string

// Application states.
const (
	StateSubmitted          State = "submitted"
	StateUnderReview        State = "under-review"
	StateShortlisted        State = "shortlisted"
	StateInterviewScheduled State = "interview-scheduled"
	StateInterviewCompleted State = "interview-completed"
	StateSecondInterview    State = "second-interview"
	StateReferenceCheck     State = "reference-check"
	StateOfferMade          State = "offer-made"
	StateOfferAccepted      State = "offer-accepted"
	StateOfferDeclined      State = "offer-declined"
	StateHired              State = "hired"
	StateRejected           State = "rejected"
	StateWithdrawn          State = "withdrawn"
)

// Mentorship states.
const (
	StatePending   State = "pending"
	StateAccepted  State = "accepted"
	StateActive    State = "active"
	StateDeclined  State = "declined"
	StateCompleted State = "completed"
)

// StateCancelled ends both an interview slot and a mentorship.
const StateCancelled State = "cancelled"

// ParseKind converts user input into a declared Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tables[k]; !ok {
		return "", &UnknownKindError{Kind: k}
	}
	return k, nil
}

func (k Kind) String() string { return string(k) }

func (s State) String() string { return string(s) }

// EventType names a lifecycle event delivered to an EventSink.
type EventType string

const (
	EventStateChanged EventType = "state_changed"
	EventScoreUpdated EventType = "score_updated"
)

