package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/ui/components"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// SummaryScreen shows what a finished scenario earned.
type SummaryScreen struct {
	scenario   scenario.Scenario
	completion conversation.Completion
	outcome    progress.Outcome
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(sc scenario.Scenario, c conversation.Completion, outcome progress.Outcome) *SummaryScreen {
	return &SummaryScreen{scenario: sc, completion: c, outcome: outcome}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Well Done"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "More scenarios"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	agg := s.outcome.Aggregate
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%s %s complete!", s.scenario.Emoji, s.scenario.Title)))
	b.WriteString("\n\n")

	b.WriteString(center.Inherit(theme.Stars).
		Render(fmt.Sprintf("+%d ★ this time", s.completion.Stars)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Total stars: %d        Level: %d        Scenarios done: %d",
		agg.Stars, agg.Level, agg.CompletedScenarios)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	bar := components.NewStarMeter(fmt.Sprintf("Level %d", agg.Level+1),
		progress.StarsPerLevel-agg.StarsToNextLevel(), progress.StarsPerLevel, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d more stars to the next level", agg.StarsToNextLevel())))
	b.WriteString("\n")

	if len(s.outcome.Unlocked) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("New badges")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, badge := range s.outcome.Unlocked {
			line := fmt.Sprintf("%s  %s", badge.Icon(), badge)
			b.WriteString(center.Foreground(badgeColor(badge)).Bold(true).Render(line))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func badgeColor(b progress.Badge) color.Color {
	if b.IsLevel() {
		return theme.Secondary
	}
	return theme.ArcadeYellow
}
