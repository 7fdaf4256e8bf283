package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/scoring"
)

// explain rewrites engine errors into messages for the terminal. Errors
// it does not recognise are returned unchanged.
func explain(err error) error {
	if err == nil {
		return nil
	}

	var (
		illegal   *lifecycle.IllegalTransitionError
		conflict  *lifecycle.ConcurrentModificationError
		unknownSt *lifecycle.UnknownStateError
		invalid   *scoring.InvalidSnapshotError
	)
	switch {
	case errors.As(err, &illegal):
		next, _ := lifecycle.AllowedNext(illegal.Kind, illegal.From)
		if len(next) == 0 {
			return fmt.Errorf("cannot move from %s to %s: %s is a final state", illegal.From, illegal.To, illegal.From)
		}
		return fmt.Errorf("cannot move from %s to %s (allowed: %s)", illegal.From, illegal.To, joinStates(next))
	case errors.As(err, &conflict):
		return fmt.Errorf("record %s was changed by someone else, please retry", conflict.RecordID)
	case errors.As(err, &unknownSt):
		states, _ := lifecycle.States(unknownSt.Kind)
		return fmt.Errorf("%s is not a %s state (known: %s)", unknownSt.State, unknownSt.Kind, joinStates(states))
	case errors.Is(err, lifecycle.ErrMissingActor):
		return errors.New("--actor is required")
	case errors.As(err, &invalid):
		return fmt.Errorf("snapshot is missing %s", invalid.Field)
	}
	return err
}

func joinStates(states []lifecycle.State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
