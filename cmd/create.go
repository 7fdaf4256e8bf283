package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/scoring"
	"github.com/abhisek/talentloop/internal/snapshot"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new application or mentorship record",
}

var createApplicationCmd = &cobra.Command{
	Use:   "application",
	Short: "Submit a job application, scored against the job at creation",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		counterparty, _ := cmd.Flags().GetString("counterparty")
		candidatePath, _ := cmd.Flags().GetString("candidate")
		jobPath, _ := cmd.Flags().GetString("job")

		candidate, err := snapshot.LoadCandidate(candidatePath)
		if err != nil {
			return err
		}
		job, err := snapshot.LoadJob(jobPath)
		if err != nil {
			return err
		}

		return createRecord(cmd, lifecycle.KindApplication, subject, counterparty,
			scoring.Snapshot{Candidate: candidate, Job: job})
	},
}

var createMentorshipCmd = &cobra.Command{
	Use:   "mentorship",
	Short: "Request a mentorship",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		counterparty, _ := cmd.Flags().GetString("counterparty")
		return createRecord(cmd, lifecycle.KindMentorship, subject, counterparty, scoring.Snapshot{})
	},
}

func createRecord(cmd *cobra.Command, kind lifecycle.Kind, subject, counterparty string, snap scoring.Snapshot) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	rec, err := e.engine.Create(cmd.Context(), kind, subject, counterparty, snap)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s %s (%s)\n", rec.Kind, rec.ID, rec.State)
	if rec.Score.Computed() {
		fmt.Printf("Score: %d\n", rec.Score.Overall)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{createApplicationCmd, createMentorshipCmd} {
		c.Flags().String("subject", "", "Applicant or mentee reference")
		c.Flags().String("counterparty", "", "Job or mentor reference")
		c.MarkFlagRequired("subject")
		c.MarkFlagRequired("counterparty")
	}
	createApplicationCmd.Flags().String("candidate", "", "Candidate profile JSON file")
	createApplicationCmd.Flags().String("job", "", "Job posting JSON file")
	createApplicationCmd.MarkFlagRequired("candidate")
	createApplicationCmd.MarkFlagRequired("job")

	createCmd.AddCommand(createApplicationCmd)
	createCmd.AddCommand(createMentorshipCmd)
}
