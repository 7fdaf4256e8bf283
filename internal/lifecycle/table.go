package lifecycle

import "sort"

type stateSet map[State]struct{}

func setOf(states ...State) stateSet {
	s := make(stateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

// kindTable declares one kind's state set and its legal outgoing edges.
// Every declared state has an entry in next; terminal states map to an
// empty set.
type kindTable struct {
	initial State
	next    map[State]stateSet
}

var tables = map[Kind]kindTable{
	KindApplication: {
		initial: StateSubmitted,
		next: map[State]stateSet{
			StateSubmitted:          setOf(StateUnderReview, StateRejected, StateWithdrawn),
			StateUnderReview:        setOf(StateShortlisted, StateRejected, StateInterviewScheduled),
			StateShortlisted:        setOf(StateInterviewScheduled, StateRejected, StateOfferMade),
			StateInterviewScheduled: setOf(StateInterviewCompleted, StateRejected, StateCancelled),
			StateInterviewCompleted: setOf(StateSecondInterview, StateReferenceCheck, StateOfferMade, StateRejected),
			StateSecondInterview:    setOf(StateOfferMade, StateRejected, StateReferenceCheck),
			StateReferenceCheck:     setOf(StateOfferMade, StateRejected),
			StateOfferMade:          setOf(StateOfferAccepted, StateOfferDeclined),
			StateOfferAccepted:      setOf(StateHired),
			StateOfferDeclined:      setOf(StateRejected),
			StateHired:              setOf(),
			StateRejected:           setOf(),
			StateWithdrawn:          setOf(),
			StateCancelled:          setOf(),
		},
	},
	KindMentorship: {
		initial: StatePending,
		next: map[State]stateSet{
			StatePending:   setOf(StateAccepted, StateDeclined),
			StateAccepted:  setOf(StateActive),
			StateActive:    setOf(StateCompleted, StateCancelled),
			StateDeclined:  setOf(),
			StateCompleted: setOf(),
			StateCancelled: setOf(),
		},
	},
}

func lookup(kind Kind) (kindTable, error) {
	t, ok := tables[kind]
	if !ok {
		return kindTable{}, &UnknownKindError{Kind: kind}
	}
	return t, nil
}

func (t kindTable) edges(kind Kind, from State) (stateSet, error) {
	next, ok := t.next[from]
	if !ok {
		return nil, &UnknownStateError{Kind: kind, State: from}
	}
	return next, nil
}

// Kinds returns every declared kind in a stable order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(tables))
	for k := range tables {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// InitialState returns the state a new record of kind starts in.
func InitialState(kind Kind) (State, error) {
	t, err := lookup(kind)
	if err != nil {
		return "", err
	}
	return t.initial, nil
}

// States returns the full declared state set for kind, sorted.
func States(kind Kind) ([]State, error) {
	t, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	states := make([]State, 0, len(t.next))
	for s := range t.next {
		states = append(states, s)
	}
	sortStates(states)
	return states, nil
}

// AllowedNext returns the states reachable from `from` in one transition.
// The result is sorted and safe to modify.
func AllowedNext(kind Kind, from State) ([]State, error) {
	t, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	next, err := t.edges(kind, from)
	if err != nil {
		return nil, err
	}
	out := make([]State, 0, len(next))
	for s := range next {
		out = append(out, s)
	}
	sortStates(out)
	return out, nil
}

// CanTransition reports whether to is a legal destination from from.
// An undeclared destination is simply not legal; only an undeclared kind
// or source state is an error.
func CanTransition(kind Kind, from, to State) (bool, error) {
	t, err := lookup(kind)
	if err != nil {
		return false, err
	}
	next, err := t.edges(kind, from)
	if err != nil {
		return false, err
	}
	_, ok := next[to]
	return ok, nil
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(kind Kind, s State) (bool, error) {
	next, err := AllowedNext(kind, s)
	if err != nil {
		return false, err
	}
	return len(next) == 0, nil
}

// IsDeclared reports whether s belongs to kind's state set.
func IsDeclared(kind Kind, s State) bool {
	t, ok := tables[kind]
	if !ok {
		return false
	}
	_, ok = t.next[s]
	return ok
}

func sortStates(states []State) {
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
}
