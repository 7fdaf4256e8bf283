package lifecycle

import (
	"maps"
	"time"

	"github.com/abhisek/talentloop/internal/scoring"
)

// Record is a job application or mentorship request moving through its
// kind's lifecycle. State, Score and Audit are only changed by Engine.
type Record struct {
	ID              string
	Kind            Kind
	SubjectRef      string // applicant or mentee
	CounterpartyRef string // job/employer or mentor
	State           State
	Score           Score
	Audit           AuditTrail

	// Version is the optimistic-concurrency token. Zero means the record
	// has never been persisted.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Score is the last computed compatibility or progress value.
type Score struct {
	Overall    int
	Dimensions map[string]int
	ComputedAt time.Time // zero when never computed
}

func scoreFrom(r scoring.Result, at time.Time) Score {
	return Score{
		Overall:    r.Overall,
		Dimensions: maps.Clone(r.Dimensions),
		ComputedAt: at,
	}
}

// Computed reports whether a score has ever been computed.
func (s Score) Computed() bool { return !s.ComputedAt.IsZero() }

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Score.Dimensions = maps.Clone(r.Score.Dimensions)
	c.Audit = AuditTrail{entries: r.Audit.Entries()}
	return &c
}

// IsTerminal reports whether the record has reached a state with no exits.
func (r *Record) IsTerminal() bool {
	ok, err := IsTerminal(r.Kind, r.State)
	return err == nil && ok
}
