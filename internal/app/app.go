package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/screens/home"
	"github.com/abhisek/talkbuddy/internal/screens/profileform"
	sessionscreen "github.com/abhisek/talkbuddy/internal/screens/session"
	"github.com/abhisek/talkbuddy/internal/screens/welcome"
	"github.com/abhisek/talkbuddy/internal/store"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Catalog  *scenario.Catalog
	Progress home.Progress
	KV       store.KV
	Session  sessionscreen.Config
	Logger   *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	agg    progress.Aggregate
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome splash.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := AppModel{opts: opts, agg: progress.New()}
	m.router = router.New(welcome.New(func() screen.Screen {
		return startScreen(opts)
	}))
	return m
}

// startScreen returns home for a known learner, else first-run profile setup.
func startScreen(opts Options) screen.Screen {
	deps := home.Deps{
		Catalog:  opts.Catalog,
		Progress: opts.Progress,
		KV:       opts.KV,
		Session:  opts.Session,
		Logger:   opts.Logger,
	}

	p, err := profile.Load(context.Background(), opts.KV)
	if err == nil {
		return home.New(deps, p)
	}
	if !errors.Is(err, profile.ErrNoProfile) {
		opts.Logger.Warn("stored profile unusable, asking again", "error", err)
	}

	save := func(ctx context.Context, p profile.Profile) error {
		return profile.Save(ctx, opts.KV, p)
	}
	return profileform.New(profile.Profile{}, save, func(p profile.Profile) tea.Cmd {
		next := home.New(deps, p)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case router.PopScreenMsg, router.PopToRootMsg, router.ReplaceScreenMsg:
		// Navigation usually follows a recorded session or a reset; keep the
		// header in step with the store.
		cmd := m.router.Update(msg)
		m.refresh()
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m *AppModel) refresh() {
	if m.opts.Progress == nil {
		return
	}
	m.agg = m.opts.Progress.Load(context.Background())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.agg.Stars, m.agg.Level, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	m.refresh()
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
