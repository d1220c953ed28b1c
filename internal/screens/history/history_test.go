package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/scenario"
)

type fixedSource []progress.HistoryEntry

func (f fixedSource) History(context.Context) []progress.HistoryEntry { return f }

func loadedScreen(t *testing.T, entries []progress.HistoryEntry) *HistoryScreen {
	t.Helper()
	c, err := scenario.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	s := New(fixedSource(entries), c)
	s.Update(s.Init()())
	return s
}

func TestHistory_Empty(t *testing.T) {
	s := loadedScreen(t, nil)
	if !strings.Contains(s.View(100, 30), "No conversations yet") {
		t.Error("expected empty state")
	}
}

func TestHistory_ListsEntries(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)
	s := loadedScreen(t, []progress.HistoryEntry{
		{SessionID: "s2", ScenarioID: "sharing-feelings", Stars: 3, Badges: []progress.Badge{progress.BadgeFirstSteps}, CompletedAt: at},
		{SessionID: "s1", ScenarioID: "retired-scenario", Stars: 1, CompletedAt: at.Add(-time.Hour)},
	})

	view := s.View(120, 30)
	for _, want := range []string{"Sharing Your Feelings", "★ 3", "1 badge", "retired-scenario", "Mar 14, 2026"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistory_ExpandShowsBadges(t *testing.T) {
	s := loadedScreen(t, []progress.HistoryEntry{
		{SessionID: "s2", ScenarioID: "sharing-feelings", Stars: 3, Badges: []progress.Badge{progress.BadgeFirstSteps}},
		{SessionID: "s1", ScenarioID: "asking-for-help", Stars: 1},
	})

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "👣 First Steps") {
		t.Error("expected badge details after expanding")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "No new badges this time") {
		t.Error("expected empty badge note for second entry")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1 at the end of the list", s.selected)
	}
}
