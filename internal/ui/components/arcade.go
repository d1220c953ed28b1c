package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every section inside the
// cabinet, so boxes line up.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return max(20, min(frameWidth-6, 60))
}

// CabinetFrame centers content inside a double-border frame.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ResultCard frames an end-of-conversation message with a row of the stars
// earned out of the best possible. The border takes the accent color.
func ResultCard(message string, earned, best, cw int, accent color.Color) string {
	body := message
	if best > 0 {
		body += "\n\n" + StarRow(earned, best, (cw-6)/2)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(body)
}

// ArcadeButton renders a fixed-width button with an optional icon.
func ArcadeButton(icon, label string, selected bool, width int) string {
	text := label
	if icon != "" {
		text = icon + " " + label
	}
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + text)
	}
	return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(text)
}
