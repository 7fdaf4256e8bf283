package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/lifecycle"
)

var transitionCmd = &cobra.Command{
	Use:   "transition <id> <state>",
	Short: "Move a record to a new state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, _ := cmd.Flags().GetString("actor")
		note, _ := cmd.Flags().GetString("note")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		rec, err := e.engine.Load(ctx, args[0])
		if err != nil {
			return err
		}

		guarded := lifecycle.NewGuardedEngine(e.engine, lifecycle.AllowAll{})
		updated, err := guarded.RequestTransition(ctx, rec, lifecycle.State(args[1]), actor, note)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s → %s\n", updated.ID, rec.State, updated.State)
		if updated.IsTerminal() {
			fmt.Println("Record is now closed.")
		}
		return nil
	},
}

var annotateCmd = &cobra.Command{
	Use:   "annotate <id>",
	Short: "Add a note to a record's audit trail without changing its state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, _ := cmd.Flags().GetString("actor")
		note, _ := cmd.Flags().GetString("note")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		rec, err := e.engine.Load(ctx, args[0])
		if err != nil {
			return err
		}
		updated, err := e.engine.Annotate(ctx, rec, actor, note)
		if err != nil {
			return err
		}

		fmt.Printf("%s: note added (%d audit entries)\n", updated.ID, updated.Audit.Len())
		return nil
	},
}

func init() {
	transitionCmd.Flags().String("actor", "", "Who is making the change")
	transitionCmd.Flags().String("note", "", "Optional note recorded in the audit trail")
	transitionCmd.MarkFlagRequired("actor")

	annotateCmd.Flags().String("actor", "", "Who is writing the note")
	annotateCmd.Flags().String("note", "", "Note text")
	annotateCmd.MarkFlagRequired("actor")
	annotateCmd.MarkFlagRequired("note")
}
