package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/ui/theme"
)

var statesCmd = &cobra.Command{
	Use:   "states <kind>",
	Short: "Print the state machine for a record kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := lifecycle.ParseKind(args[0])
		if err != nil {
			return err
		}
		initial, err := lifecycle.InitialState(kind)
		if err != nil {
			return err
		}
		states, err := lifecycle.States(kind)
		if err != nil {
			return err
		}

		fmt.Println(theme.Title.Render(fmt.Sprintf("%s lifecycle", kind)))
		for _, s := range states {
			next, err := lifecycle.AllowedNext(kind, s)
			if err != nil {
				return err
			}
			marker := "  "
			if s == initial {
				marker = "▶ "
			}
			targets := theme.Hint.Render("(final)")
			if len(next) > 0 {
				targets = joinStates(next)
			}
			fmt.Printf("%s%s → %s\n", marker, theme.StateBadge(kind, s), targets)
		}
		return nil
	},
}
