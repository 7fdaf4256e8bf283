package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestScoreBar_Width(t *testing.T) {
	for _, score := range []int{0, 25, 65, 100, 140, -5} {
		bar := NewScoreBar("skills", score, true, 40)
		if got := lipgloss.Width(bar.View()); got != 40 {
			t.Errorf("score %d: width = %d, want 40", score, got)
		}
	}
}

func TestScoreBar_ShowsValue(t *testing.T) {
	view := NewScoreBar("", 65, true, 20).View()
	if !strings.Contains(view, "65") {
		t.Errorf("view %q does not contain the score", view)
	}
}

func TestScoreBar_MinimumBar(t *testing.T) {
	view := NewScoreBar("", 50, false, 1).View()
	if got := lipgloss.Width(view); got != 4 {
		t.Errorf("width = %d, want 4", got)
	}
}
