package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/snapshot"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute <id>",
	Short: "Recompute a record's score from fresh snapshots",
	Long: "Applications are scored from --candidate and --job; mentorships from --plan.\n" +
		"Scores are never refreshed implicitly, so run this after profiles or plans change.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := snapshot.FileProvider{}
		provider.CandidatePath, _ = cmd.Flags().GetString("candidate")
		provider.JobPath, _ = cmd.Flags().GetString("job")
		provider.PlanPath, _ = cmd.Flags().GetString("plan")

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
		snap, err := provider.Snapshot(ctx, rec)
		if err != nil {
			return err
		}
		updated, err := e.engine.Recompute(ctx, rec, snap)
		if err != nil {
			return err
		}

		fmt.Printf("%s: score %d", updated.ID, updated.Score.Overall)
		if rec.Score.Computed() {
			fmt.Printf(" (was %d)", rec.Score.Overall)
		}
		fmt.Println()

		dims := make([]string, 0, len(updated.Score.Dimensions))
		for d := range updated.Score.Dimensions {
			dims = append(dims, d)
		}
		sort.Strings(dims)
		for _, d := range dims {
			fmt.Printf("  %-12s %3d\n", d, updated.Score.Dimensions[d])
		}
		return nil
	},
}

func init() {
	recomputeCmd.Flags().String("candidate", "", "Candidate profile JSON file (applications)")
	recomputeCmd.Flags().String("job", "", "Job posting JSON file (applications)")
	recomputeCmd.Flags().String("plan", "", "Mentorship plan JSON file (mentorships)")
	recomputeCmd.MarkFlagsRequiredTogether("candidate", "job")
	recomputeCmd.MarkFlagsMutuallyExclusive("candidate", "plan")
	recomputeCmd.MarkFlagsOneRequired("candidate", "plan")
}
