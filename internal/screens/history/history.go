package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// Source lists finished sessions. *progress.Service implements it.
type Source interface {
	History(ctx context.Context) []progress.HistoryEntry
}

type historyLoadedMsg struct {
	Entries []progress.HistoryEntry
}

// HistoryScreen displays past sessions and the badges they unlocked.
type HistoryScreen struct {
	source   Source
	catalog  *scenario.Catalog
	entries  []progress.HistoryEntry
	selected int
	expanded map[int]bool
	loaded   bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. catalog resolves scenario titles and may be nil.
func New(source Source, catalog *scenario.Catalog) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		catalog:  catalog,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{Entries: s.source.History(context.Background())}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.entries = msg.Entries
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No conversations yet. Pick a scenario to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.entries {
		dateStr := e.CompletedAt.Local().Format("Jan 02, 2006 15:04")

		badgeStr := ""
		if n := len(e.Badges); n > 0 {
			badgeStr = fmt.Sprintf("  %d badge", n)
			if n > 1 {
				badgeStr += "s"
			}
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-32s  ★ %d%s",
			prefix, dateStr, s.scenarioTitle(e.ScenarioID), e.Stars, badgeStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		// Show expanded badge details.
		if s.expanded[i] {
			if len(e.Badges) == 0 {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
						Render("    No new badges this time")))
				b.WriteString("\n")
			} else {
				for _, badge := range e.Badges {
					badgeLine := fmt.Sprintf("    %s %s", badge.Icon(), badge)
					b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
						lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(badgeLine)))
					b.WriteString("\n")
				}
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) scenarioTitle(id string) string {
	if s.catalog == nil {
		return id
	}
	sc, err := s.catalog.Get(id)
	if err != nil {
		return id
	}
	return sc.Emoji + " " + sc.Title
}
