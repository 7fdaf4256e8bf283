package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recorded lifecycle events, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		recordID, _ := cmd.Flags().GetString("record")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventLog().Query(cmd.Context(), store.QueryOpts{Limit: limit, RecordID: recordID})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No lifecycle events found.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-13s  %-36s  %s\n", "Seq", "Timestamp", "Type", "Record", "Detail")
		fmt.Println(strings.Repeat("─", 110))
		for _, ev := range events {
			var detail string
			switch ev.Type {
			case lifecycle.EventStateChanged:
				detail = fmt.Sprintf("%s → %s by %s", ev.From, ev.To, ev.Actor)
			case lifecycle.EventScoreUpdated:
				if ev.ScoreOverall != nil {
					detail = fmt.Sprintf("score %d", *ev.ScoreOverall)
				}
			}
			fmt.Printf("%-6d  %-19s  %-13s  %-36s  %s\n",
				ev.Sequence,
				ev.OccurredAt.Local().Format(timeLayout),
				ev.Type,
				ev.RecordID,
				detail,
			)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().Int("limit", 20, "Maximum number of events")
	eventsCmd.Flags().String("record", "", "Only events for this record ID")
}
