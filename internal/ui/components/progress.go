package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentloop/internal/ui/theme"
)

// ScoreBar displays a 0-100 score as a horizontal bar.
type ScoreBar struct {
	Label     string
	Score     int
	ShowValue bool
	Width     int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, score int, showValue bool, width int) ScoreBar {
	return ScoreBar{
		Label:     label,
		Score:     score,
		ShowValue: showValue,
		Width:     width,
	}
}

// View renders the score bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Label.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	valueWidth := 0
	if p.ShowValue {
		valueWidth = 5 // "  100"
	}

	barWidth := p.Width - labelWidth - valueWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * p.Score / 100
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowValue {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d", p.Score))
	}

	return result
}
