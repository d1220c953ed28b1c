package scenarios

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/evaluator"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// DetailScreen describes one scenario before it starts.
type DetailScreen struct {
	scenario scenario.Scenario
	start    StartFunc
	errMsg   string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

func newDetail(sc scenario.Scenario, start StartFunc) *DetailScreen {
	return &DetailScreen{scenario: sc, start: start}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.scenario.Title }

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || kmsg.String() != "enter" || d.start == nil {
		return d, nil
	}
	next, err := d.start(d.scenario)
	if err != nil {
		d.errMsg = err.Error()
		return d, nil
	}
	return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) View(width, height int) string {
	sc := d.scenario
	contentWidth := width - 8
	if contentWidth > 70 {
		contentWidth = 70
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", sc.Emoji, sc.Title)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s %s · %s", sc.Theme.Icon(), sc.Theme.DisplayName(), sc.Difficulty.DisplayName())))
	b.WriteString("\n\n")

	if sc.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(sc.Description))
		b.WriteString("\n\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  The situation"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		PaddingLeft(2).
		Render(sc.Situation))
	b.WriteString("\n\n")

	var choices, inputs int
	for _, st := range sc.Steps {
		switch st.Kind() {
		case scenario.KindChoice:
			choices++
		case scenario.KindInput:
			inputs++
		}
	}

	b.WriteString(dimStyle.Render("  Steps:      ") + valStyle.Render(fmt.Sprintf("%d", len(sc.Steps))) + "\n")
	b.WriteString(dimStyle.Render("  Questions:  ") + valStyle.Render(fmt.Sprintf("%d to pick, %d to type", choices, inputs)) + "\n")
	b.WriteString(dimStyle.Render("  Up to:      ") + theme.Stars.Render(fmt.Sprintf("★ %d", sc.MaxStars(evaluator.GoodStars))) + "\n")

	if d.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + d.errMsg))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}
