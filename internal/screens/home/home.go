package home

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/screens/dashboard"
	"github.com/abhisek/talkbuddy/internal/screens/history"
	"github.com/abhisek/talkbuddy/internal/screens/profileform"
	"github.com/abhisek/talkbuddy/internal/screens/scenarios"
	sessionscreen "github.com/abhisek/talkbuddy/internal/screens/session"
	"github.com/abhisek/talkbuddy/internal/store"
	"github.com/abhisek/talkbuddy/internal/ui/components"
)

// Progress is the part of progress.Service the home screen and the screens
// it opens rely on.
type Progress interface {
	Load(ctx context.Context) progress.Aggregate
	History(ctx context.Context) []progress.HistoryEntry
	Record(ctx context.Context, c conversation.Completion) progress.Outcome
}

// Deps are the services behind the home menu.
type Deps struct {
	Catalog  *scenario.Catalog
	Progress Progress
	KV       store.KV
	Session  sessionscreen.Config
	Logger   *slog.Logger
	Now      func() time.Time
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps          Deps
	learner       profile.Profile
	agg           progress.Aggregate
	menu          components.Menu
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for learner.
func New(deps Deps, learner profile.Profile) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	h := &HomeScreen{
		deps:    deps,
		learner: learner,
		agg:     progress.New(),
	}

	items := []components.MenuItem{
		{Icon: "💬", Label: "PLAY", Action: h.push(h.openScenarios)},
		{Icon: "⭐", Label: "MY PROGRESS", Action: h.push(func() screen.Screen {
			return dashboard.New(deps.Progress)
		})},
		{Icon: "📜", Label: "HISTORY", Action: h.push(func() screen.Screen {
			return history.New(deps.Progress, deps.Catalog)
		})},
		{Icon: "🙂", Label: "MY PROFILE", Action: h.push(h.openProfile)},
		{Icon: "👋", Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// push defers building the next screen until its menu item is chosen.
func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		next := build()
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	}
}

func (h *HomeScreen) openScenarios() screen.Screen {
	learner := h.learner
	return scenarios.New(h.deps.Catalog, learner.CatalogFilter(), func(sc scenario.Scenario) (screen.Screen, error) {
		return sessionscreen.New(sc, learner, h.deps.Progress, h.deps.Session)
	})
}

func (h *HomeScreen) openProfile() screen.Screen {
	save := func(ctx context.Context, p profile.Profile) error {
		return profile.Save(ctx, h.deps.KV, p)
	}
	return profileform.New(h.learner, save, func(profile.Profile) tea.Cmd {
		return func() tea.Msg { return router.PopScreenMsg{} }
	})
}

func (h *HomeScreen) Init() tea.Cmd {
	h.reload()
	return nil
}

// reload refreshes the stats and learner after another screen changed them.
func (h *HomeScreen) reload() {
	ctx := context.Background()
	h.agg = h.deps.Progress.Load(ctx)

	if h.deps.KV != nil {
		p, err := profile.Load(ctx, h.deps.KV)
		switch {
		case err == nil:
			h.learner = p
		case !errors.Is(err, profile.ErrNoProfile):
			h.deps.Logger.Warn("reload profile failed", "error", err)
		}
	}

	h.mascotVariant = MascotIdle
	if h.agg.CompletedScenarios == 0 {
		h.mascotVariant = MascotWaving
	} else if h.badgeToday(ctx) {
		h.mascotVariant = MascotCelebrating
	}
}

// badgeToday reports whether a badge was unlocked in the last 24 hours.
func (h *HomeScreen) badgeToday(ctx context.Context) bool {
	now := h.deps.Now()
	for _, e := range h.deps.Progress.History(ctx) {
		if now.Sub(e.CompletedAt) >= 24*time.Hour {
			continue
		}
		if len(e.Badges) > 0 {
			return true
		}
	}
	return false
}

// Aggregate returns the progress shown in the stats bar.
func (h *HomeScreen) Aggregate() progress.Aggregate {
	return h.agg
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.ResumeMsg); ok {
		h.reload()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100
	tiny := termHeight < 24

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderGreeting(h.learner.DisplayName(), h.learner.Avatar, cw))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}

	sections = append(sections, renderStatsBar(h.agg.Stars, h.agg.Level, len(h.agg.Badges), cw, compact))

	if tiny {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Items, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Items, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
