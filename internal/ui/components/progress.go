package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// StarMeter shows how many of the stars needed for a goal are collected,
// one slot per star.
type StarMeter struct {
	Label string
	Have  int
	Need  int
	Width int
}

// NewStarMeter creates a meter for have of need stars fitting in width cells.
func NewStarMeter(label string, have, need, width int) StarMeter {
	return StarMeter{Label: label, Have: have, Need: need, Width: width}
}

func (s StarMeter) View() string {
	var b strings.Builder
	if s.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(s.Label))
		b.WriteString("  ")
	}

	count := fmt.Sprintf("  %d/%d", max(0, min(s.Have, s.Need)), s.Need)
	// Each slot is a star plus a space.
	room := (s.Width - lipgloss.Width(b.String()) - len(count)) / 2
	b.WriteString(StarRow(s.Have, s.Need, room))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(count))
	return b.String()
}

// StarRow renders earned of total as filled and hollow stars. When total
// does not fit in slots, the row is scaled down to slots stars.
func StarRow(earned, total, slots int) string {
	if total <= 0 {
		return ""
	}
	earned = max(0, min(earned, total))
	n := total
	if slots > 0 && n > slots {
		earned = earned * slots / total
		n = slots
	}

	filled := strings.TrimSpace(strings.Repeat("★ ", earned))
	hollow := strings.TrimSpace(strings.Repeat("☆ ", n-earned))
	sep := ""
	if filled != "" && hollow != "" {
		sep = " "
	}
	return theme.Stars.Render(filled) + sep +
		lipgloss.NewStyle().Foreground(theme.Border).Render(hollow)
}
