package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		state, _ := cmd.Flags().GetString("state")
		limit, _ := cmd.Flags().GetInt("limit")

		f := store.Filter{State: lifecycle.State(state), Limit: limit}
		if kindFlag != "" {
			kind, err := lifecycle.ParseKind(kindFlag)
			if err != nil {
				return err
			}
			f.Kind = kind
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		records, err := e.store.RecordRepo().List(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No records found.")
			return nil
		}

		fmt.Printf("%-36s  %-11s  %-20s  %-16s  %-16s  %5s  %s\n",
			"ID", "Kind", "State", "Subject", "Counterparty", "Score", "Updated")
		fmt.Println(strings.Repeat("─", 130))
		for _, r := range records {
			score := "-"
			if r.Score.Computed() {
				score = fmt.Sprintf("%d", r.Score.Overall)
			}
			fmt.Printf("%-36s  %-11s  %-20s  %-16s  %-16s  %5s  %s\n",
				r.ID, r.Kind, r.State,
				truncate(r.SubjectRef, 16), truncate(r.CounterpartyRef, 16),
				score, r.UpdatedAt.Local().Format(timeLayout))
		}
		return nil
	},
}

// truncate shortens s to at most n terminal cells, marking the cut with
// an ellipsis. Multi-byte and wide runes are never split.
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "…")
}

func init() {
	listCmd.Flags().String("kind", "", "Only records of this kind (application, mentorship)")
	listCmd.Flags().String("state", "", "Only records in this state")
	listCmd.Flags().Int("limit", 50, "Maximum number of records")
}
