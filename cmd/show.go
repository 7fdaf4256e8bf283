package cmd

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/ui/components"
	"github.com/abhisek/talentloop/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04:05"

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a record with its score and audit trail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetInt("last")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := e.engine.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(renderRecord(rec, last))
		return nil
	},
}

// renderRecord formats rec as a card. last limits the audit entries
// shown; zero or less shows all of them.
func renderRecord(rec *lifecycle.Record, last int) string {
	field := func(label, value string) string {
		return theme.Label.Render(label) + theme.Body.Render(value)
	}

	lines := []string{
		theme.Title.Render(fmt.Sprintf("%s %s", strings.ToUpper(string(rec.Kind)), rec.ID)),
		"",
		theme.Label.Render("State") + theme.StateBadge(rec.Kind, rec.State),
		field("Subject", rec.SubjectRef),
		field("Counterparty", rec.CounterpartyRef),
		field("Version", fmt.Sprintf("%d", rec.Version)),
		field("Created", rec.CreatedAt.Local().Format(timeLayout)),
		field("Updated", rec.UpdatedAt.Local().Format(timeLayout)),
		"",
	}

	if rec.Score.Computed() {
		lines = append(lines, components.NewScoreBar("Score", rec.Score.Overall, true, 48).View())
		dims := make([]string, 0, len(rec.Score.Dimensions))
		for d := range rec.Score.Dimensions {
			dims = append(dims, d)
		}
		sort.Strings(dims)
		for _, d := range dims {
			lines = append(lines, components.NewScoreBar("  "+d, rec.Score.Dimensions[d], true, 48).View())
		}
		lines = append(lines, theme.Hint.Render("computed "+rec.Score.ComputedAt.Local().Format(timeLayout)))
	} else {
		lines = append(lines, theme.Hint.Render("not scored yet"))
	}

	lines = append(lines, "", theme.Title.Render("Audit trail"))
	entries := rec.Audit.Entries()
	if last > 0 {
		entries = rec.Audit.Last(last)
	}
	if len(entries) == 0 {
		lines = append(lines, theme.Hint.Render("no entries"))
	}
	for _, en := range entries {
		lines = append(lines, renderEntry(rec.Kind, en))
	}

	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderEntry(kind lifecycle.Kind, en lifecycle.AuditEntry) string {
	head := fmt.Sprintf("%3d  %s  %-12s ", en.Seq, en.Timestamp.Local().Format(timeLayout), en.Actor)
	var change string
	if en.IsAnnotation() {
		change = theme.Note.Render("note")
	} else {
		change = theme.StateBadge(kind, en.From) + "→" + theme.StateBadge(kind, en.To)
	}
	line := theme.Body.Render(head) + change
	if en.Note != "" {
		line += "  " + theme.Hint.Render(en.Note)
	}
	return line
}

func init() {
	showCmd.Flags().Int("last", 0, "Show only the most recent N audit entries")
}
