package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/ui/components"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

const arcadeTitleFull = `╔╦╗╔═╗╦  ╦╔═  ╔╗ ╦ ╦╔╦╗╔╦╗╦ ╦
 ║ ╠═╣║  ╠╩╗  ╠╩╗║ ║ ║║ ║║╚╦╝
 ╩ ╩ ╩╩═╝╩ ╩  ╚═╝╚═╝═╩╝═╩╝ ╩ `

const arcadeTitleCompact = "T · A · L · K · B · U · D · D · Y"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderGreeting welcomes the learner by name with their avatar.
func renderGreeting(name, avatar string, cw int) string {
	text := fmt.Sprintf("Hi %s! Ready to practice?", name)
	if avatar != "" {
		text = avatar + "  " + text
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderStatsBar renders stars, level and badge count in a bordered box
// matching content width.
func renderStatsBar(stars, level, badges, cw int, compact bool) string {
	starStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			starStyle.Render(fmt.Sprintf("★%d", stars)),
			levelStyle.Render(fmt.Sprintf("Lv%d", level)),
			badgeStyle.Render(fmt.Sprintf("🏅%d", badges)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			starStyle.Render(fmt.Sprintf("★ %d STARS", stars)),
			levelStyle.Render(fmt.Sprintf("LEVEL %d", level)),
			badgeStyle.Render(fmt.Sprintf("🏅 %d BADGES", badges)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []components.MenuItem, selected int, cw int) string {
	buttons := make([]string, len(items))
	for i, it := range items {
		buttons[i] = components.ArcadeButton(it.Icon, it.Label, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []components.MenuItem, selected int, cw int) string {
	var lines []string
	for i, it := range items {
		label := fmt.Sprintf("%d %s", i+1, it.Text())
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
