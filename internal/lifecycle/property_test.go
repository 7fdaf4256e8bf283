package lifecycle

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// pickState maps an arbitrary index onto kind's declared states.
func pickState(kind Kind, idx int) State {
	states, _ := States(kind)
	return states[idx%len(states)]
}

func pickKind(idx int) Kind {
	kinds := Kinds()
	return kinds[idx%len(kinds)]
}

// TestTransitionSucceedsIffDeclared checks every (kind, from, to) pair:
// a transition succeeds exactly when the table declares it, and a
// rejected transition changes nothing.
func TestTransitionSucceedsIffDeclared(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("requestTransition succeeds iff to is in allowedNext", prop.ForAll(
		func(kindIdx, fromIdx, toIdx int) bool {
			kind := pickKind(kindIdx)
			from := pickState(kind, fromIdx)
			to := pickState(kind, toIdx)

			repo := newFakeRepo()
			rec := &Record{ID: "p", Kind: kind, SubjectRef: "s", CounterpartyRef: "c",
				State: from, Version: 1, Score: Score{Overall: 42}}
			repo.put(rec)
			eng := newTestEngine(repo, nil)

			allowed, err := CanTransition(kind, from, to)
			if err != nil {
				return false
			}
			next, err := eng.RequestTransition(context.Background(), rec, to, "actor", "")
			if allowed {
				return err == nil && next.State == to && next.Audit.Len() == 1
			}

			var illegal *IllegalTransitionError
			if !errors.As(err, &illegal) {
				return false
			}
			stored, _ := repo.Load(context.Background(), "p")
			return stored.State == from && stored.Audit.Len() == 0 &&
				stored.Score.Overall == 42 && stored.Version == 1
		},
		gen.IntRange(0, 10), gen.IntRange(0, 100), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// TestAuditTrailIsAppendOnly walks random paths through a kind's graph and
// checks the trail grows by one per successful call with prior entries
// unchanged.
func TestAuditTrailIsAppendOnly(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("audit trail grows by exactly one per mutation", prop.ForAll(
		func(kindIdx int, steps []int) bool {
			kind := pickKind(kindIdx)
			repo := newFakeRepo()
			eng := newTestEngine(repo, nil)
			ctx := context.Background()

			initial, _ := InitialState(kind)
			rec := &Record{ID: "walk", Kind: kind, SubjectRef: "s", CounterpartyRef: "c",
				State: initial, Version: 1}
			repo.put(rec)

			for _, step := range steps {
				before := rec.Audit.Entries()

				var next *Record
				var err error
				exits, _ := AllowedNext(kind, rec.State)
				if step%3 == 0 || len(exits) == 0 {
					next, err = eng.Annotate(ctx, rec, "actor", "note")
				} else {
					next, err = eng.RequestTransition(ctx, rec, exits[step%len(exits)], "actor", "")
				}
				if err != nil {
					return false
				}

				after := next.Audit.Entries()
				if len(after) != len(before)+1 {
					return false
				}
				if !slices.Equal(after[:len(before)], before) {
					return false
				}
				if after[len(after)-1].Seq != len(after) {
					return false
				}
				rec = next
			}
			return true
		},
		gen.IntRange(0, 10), gen.SliceOf(gen.IntRange(0, 50)),
	))

	properties.TestingRun(t)
}

// TestTerminalStatesRejectEveryTarget checks that no request leaves a
// terminal state, including re-requesting the same state.
func TestTerminalStatesRejectEveryTarget(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("terminal states have no exits", prop.ForAll(
		func(kindIdx, fromIdx, toIdx int) bool {
			kind := pickKind(kindIdx)
			from := pickState(kind, fromIdx)
			if terminal, _ := IsTerminal(kind, from); !terminal {
				return true
			}
			rec := &Record{ID: "t", Kind: kind, State: from, Version: 1}
			eng := newTestEngine(newFakeRepo(), nil)
			_, err := eng.RequestTransition(context.Background(), rec, pickState(kind, toIdx), "admin", "")
			var illegal *IllegalTransitionError
			return errors.As(err, &illegal)
		},
		gen.IntRange(0, 10), gen.IntRange(0, 100), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
