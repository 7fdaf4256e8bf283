package theme

import (
	"strings"
	"testing"

	"github.com/abhisek/talentloop/internal/lifecycle"
)

func TestStateStyle(t *testing.T) {
	tests := []struct {
		kind  lifecycle.Kind
		state lifecycle.State
		want  string
	}{
		{lifecycle.KindApplication, lifecycle.StateSubmitted, "open"},
		{lifecycle.KindApplication, lifecycle.StateHired, "won"},
		{lifecycle.KindApplication, lifecycle.StateRejected, "lost"},
		{lifecycle.KindMentorship, lifecycle.StateActive, "open"},
		{lifecycle.KindMentorship, lifecycle.StateCompleted, "won"},
		{lifecycle.KindMentorship, lifecycle.StateDeclined, "lost"},
		{lifecycle.KindMentorship, "bogus", "open"},
	}
	styles := map[string]string{
		"open": Open.Render("x"),
		"won":  Won.Render("x"),
		"lost": Lost.Render("x"),
	}
	for _, tt := range tests {
		got := StateStyle(tt.kind, tt.state).Render("x")
		if got != styles[tt.want] {
			t.Errorf("StateStyle(%s, %s) does not match %s style", tt.kind, tt.state, tt.want)
		}
	}
}

func TestStateBadge(t *testing.T) {
	got := StateBadge(lifecycle.KindApplication, lifecycle.StateUnderReview)
	if !strings.Contains(got, "under-review") {
		t.Errorf("badge %q does not contain state name", got)
	}
}
