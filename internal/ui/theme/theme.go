package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentloop/internal/lifecycle"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(14)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)

// Record states
var (
	badge = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	// Open is used for non-terminal states.
	Open = badge.Foreground(Secondary)

	// Won marks terminal states that end the relationship successfully.
	Won = badge.Foreground(Success)

	// Lost marks every other terminal state.
	Lost = badge.Foreground(Error)

	// Note marks annotation entries in an audit trail.
	Note = lipgloss.NewStyle().Foreground(Accent)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// StateStyle returns the badge style for state within kind.
func StateStyle(kind lifecycle.Kind, state lifecycle.State) lipgloss.Style {
	switch state {
	case lifecycle.StateHired, lifecycle.StateCompleted:
		return Won
	}
	if terminal, err := lifecycle.IsTerminal(kind, state); err == nil && terminal {
		return Lost
	}
	return Open
}

// StateBadge renders state with its badge style.
func StateBadge(kind lifecycle.Kind, state lifecycle.State) string {
	return StateStyle(kind, state).Render(string(state))
}
