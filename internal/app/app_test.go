package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/screens/home"
	"github.com/abhisek/talkbuddy/internal/screens/profileform"
	"github.com/abhisek/talkbuddy/internal/store"
)

func testOptions(t *testing.T) (Options, *progress.Service) {
	t.Helper()
	catalog, err := scenario.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	kv := store.NewMemory()
	svc := progress.NewService(kv, nil)
	return Options{Catalog: catalog, Progress: svc, KV: kv}, svc
}

// captureScreen records the keys it receives.
type captureScreen struct {
	capturing bool
	keys      []string
}

func (c *captureScreen) Init() tea.Cmd                 { return nil }
func (c *captureScreen) View(width, height int) string { return "" }
func (c *captureScreen) Title() string                 { return "capture" }
func (c *captureScreen) CapturingInput() bool          { return c.capturing }
func (c *captureScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		c.keys = append(c.keys, k.String())
	}
	return c, nil
}

func TestStartScreen_FirstRun(t *testing.T) {
	opts, _ := testOptions(t)
	if _, ok := startScreen(opts).(*profileform.Form); !ok {
		t.Error("expected profile setup when no profile is stored")
	}
}

func TestStartScreen_KnownLearner(t *testing.T) {
	opts, _ := testOptions(t)
	p := profile.Profile{
		Name:            "Ada",
		Age:             8,
		LearningLevel:   scenario.Beginner,
		PreferredThemes: []scenario.Theme{scenario.ThemeFriends},
		Avatar:          "🦊",
	}
	if err := profile.Save(context.Background(), opts.KV, p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, ok := startScreen(opts).(*home.HomeScreen); !ok {
		t.Error("expected home screen for a saved profile")
	}
}

func TestEsc_ForwardedWhileCapturing(t *testing.T) {
	opts, _ := testOptions(t)
	m := newAppModel(opts)
	c := &captureScreen{capturing: true}
	m.router.Push(c)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("esc should not pop while the screen captures input")
		}
	}
	if len(c.keys) != 1 || c.keys[0] != "esc" {
		t.Errorf("keys = %v, want [esc]", c.keys)
	}

	c.capturing = false
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestHeader_RefreshedAfterNavigation(t *testing.T) {
	opts, svc := testOptions(t)
	m := newAppModel(opts)
	m.router.Push(&captureScreen{})

	svc.Record(context.Background(), conversation.Completion{ScenarioID: "x", SessionID: "s", Stars: 12})
	model, _ := m.Update(router.PopScreenMsg{})
	got := model.(AppModel).agg
	if got.Stars != 12 || got.Level != 2 {
		t.Errorf("header aggregate = %+v, want 12 stars at level 2", got)
	}
}

func TestFooterHints(t *testing.T) {
	opts, _ := testOptions(t)
	m := newAppModel(opts)
	hints := m.footerHints(m.router.Active())
	if len(hints) != 3 || hints[2].Key != "Ctrl+C" {
		t.Errorf("root hints = %+v", hints)
	}

	m.router.Push(&captureScreen{})
	hints = m.footerHints(m.router.Active())
	if len(hints) != 2 || hints[0].Key != "Esc" {
		t.Errorf("pushed hints = %+v", hints)
	}
}
