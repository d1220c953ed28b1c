package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/ui/components"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// Source loads the learner's progress. *progress.Service implements it.
type Source interface {
	Load(ctx context.Context) progress.Aggregate
}

type loadedMsg struct {
	Aggregate progress.Aggregate
}

type tab int

const (
	tabEarned tab = iota
	tabGoals
)

// DashboardScreen shows stars, level and the badge collection.
type DashboardScreen struct {
	source       Source
	agg          progress.Aggregate
	selectedTab  tab
	scrollOffset int
	loaded       bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(source Source) *DashboardScreen {
	return &DashboardScreen{source: source}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{Aggregate: s.source.Load(context.Background())}
	}
}

func (s *DashboardScreen) Title() string {
	return "My Progress"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Badges/Goals"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.agg = msg.Aggregate
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			s.selectedTab = 1 - s.selectedTab
			s.scrollOffset = 0
			return s, nil
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
			return s, nil
		case "down", "j":
			if s.scrollOffset < len(s.lines())-1 {
				s.scrollOffset++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	agg := s.agg
	var b strings.Builder
	b.WriteString("\n")

	cw := components.ContentWidth(width)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("★ Stars", fmt.Sprintf("%d", agg.Stars), theme.Stars, cw/4),
		statCard("Level", fmt.Sprintf("%d", agg.Level), lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), cw/4),
		statCard("Done", fmt.Sprintf("%d", agg.CompletedScenarios), lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true), cw/4),
		statCard("Success", fmt.Sprintf("%d%%", agg.CompletionRate()), lipgloss.NewStyle().Foreground(theme.Success).Bold(true), cw/4),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cards))
	b.WriteString("\n\n")

	bar := components.NewStarMeter(fmt.Sprintf("Level %d", agg.Level+1),
		progress.StarsPerLevel-agg.StarsToNextLevel(), progress.StarsPerLevel, cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d more stars to reach level %d", agg.StarsToNextLevel(), agg.Level+1)))
	if agg.StreakDays > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Accent).
			Render(fmt.Sprintf("🔥 %d day streak", agg.StreakDays)))
	}
	b.WriteString("\n\n")

	// Tabs.
	labels := []string{
		fmt.Sprintf("🏆 Badges (%d)", len(agg.Badges)),
		fmt.Sprintf("🎯 Goals (%d)", len(agg.Goals())),
	}
	var tabs []string
	for i, label := range labels {
		if tab(i) == s.selectedTab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	lines := s.lines()
	if len(lines) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No badges yet. Finish a scenario to earn your first!"))
		return b.String()
	}

	maxVisible := height - lipgloss.Height(b.String()) - 1
	if maxVisible < 3 {
		maxVisible = 3
	}
	start := s.scrollOffset
	end := min(start+maxVisible, len(lines))
	for _, line := range lines[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	if end < len(lines) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(lines)-end)))
	}

	return b.String()
}

// lines renders the rows of the selected tab.
func (s *DashboardScreen) lines() []string {
	var out []string
	switch s.selectedTab {
	case tabEarned:
		for _, badge := range s.agg.Badges {
			style := lipgloss.NewStyle().Foreground(theme.ArcadeYellow)
			if badge.IsLevel() {
				style = lipgloss.NewStyle().Foreground(theme.Secondary)
			}
			out = append(out, style.Render(fmt.Sprintf("%s  %-16s", badge.Icon(), badge)))
		}
	case tabGoals:
		for _, g := range s.agg.Goals() {
			out = append(out,
				lipgloss.NewStyle().Foreground(theme.TextDim).
					Render(fmt.Sprintf("🔒  %-16s %s", g.Badge, g.Hint)))
		}
	}
	return out
}

func statCard(label, value string, valueStyle lipgloss.Style, w int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(w).
		Align(lipgloss.Center).
		Render(valueStyle.Render(value) + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
}
