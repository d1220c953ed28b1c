package session

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/screens/summary"
	"github.com/abhisek/talkbuddy/internal/ui/components"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
)

// Recorder stores a finished session. *progress.Service implements it.
type Recorder interface {
	Record(ctx context.Context, c conversation.Completion) progress.Outcome
}

// Config holds the pacing for a session screen.
type Config struct {
	Delays conversation.Delays
	// PromptDwell is how long a prompt step stays up before moving on by
	// itself. Zero waits for the learner.
	PromptDwell time.Duration
	Logger      *slog.Logger
}

type restartMsg struct{}

type finishMsg struct{}

type recordedMsg struct {
	completion conversation.Completion
	outcome    progress.Outcome
}

// SessionScreen plays one scenario as a chat.
type SessionScreen struct {
	rt       *conversation.Runtime
	pacer    *pacer
	recorder Recorder
	learner  profile.Profile
	dwell    time.Duration

	choices components.MultiChoice
	input   components.TextInput
	buttons components.ButtonRow

	shownSession string
	shownStep    int
	shownPhase   conversation.Phase
	notice       string
	recording    bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New starts sc for learner. It fails only when sc cannot be played.
func New(sc scenario.Scenario, learner profile.Profile, recorder Recorder, cfg Config) (*SessionScreen, error) {
	p := newPacer()
	rt, err := conversation.New(sc, learner.DisplayName(),
		conversation.WithScheduler(p),
		conversation.WithDelays(cfg.Delays),
		conversation.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	return &SessionScreen{
		rt:        rt,
		pacer:     p,
		recorder:  recorder,
		learner:   learner,
		dwell:     cfg.PromptDwell,
		input:     components.NewTextInput("Type what you would say...", 200),
		shownStep: -1,
	}, nil
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(s.sync(), s.input.Init())
}

func (s *SessionScreen) Title() string {
	sc := s.rt.Scenario()
	return sc.Emoji + " " + sc.Title
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.rt.Phase() {
	case conversation.PhaseEvaluating:
		return []layout.KeyHint{{Key: "Esc", Description: "Leave"}}
	case conversation.PhaseCompleted:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
		}
	}
	switch s.rt.CurrentStep().(type) {
	case *scenario.ChoiceStep:
		return []layout.KeyHint{
			{Key: "↑↓/A-D", Description: "Pick"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Leave"},
		}
	case *scenario.InputStep:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case paceMsg:
		if msg.owner != s.pacer {
			return s, nil
		}
		s.pacer.fire(msg.id)
		return s, s.sync()

	case dwellMsg:
		return s, s.handleDwell(msg)

	case restartMsg:
		s.rt.Restart()
		s.notice = ""
		s.recording = false
		return s, s.sync()

	case finishMsg:
		return s, s.finish()

	case recordedMsg:
		next := summary.New(s.rt.Scenario(), msg.completion, msg.outcome)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.inputActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Close stops the runtime and drops any pending pacing ticks.
func (s *SessionScreen) Close() {
	s.rt.Close()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch s.rt.Phase() {
	case conversation.PhaseEvaluating:
		return nil
	case conversation.PhaseCompleted:
		var cmd tea.Cmd
		s.buttons, cmd = s.buttons.Update(msg)
		return cmd
	}

	switch st := s.rt.CurrentStep().(type) {
	case *scenario.PromptStep:
		switch msg.String() {
		case "enter", "space", " ":
			s.rt.Continue()
			return s.sync()
		}

	case *scenario.ChoiceStep:
		s.choices, _ = s.choices.Update(msg)
		if i, ok := s.choices.Chosen(); ok {
			s.rt.SubmitChoice(st.ID, st.Options[i].ID)
			return s.sync()
		}

	case *scenario.InputStep:
		if msg.String() == "enter" {
			if !s.rt.SubmitFreeText(s.input.Value()) {
				s.notice = "Type a few words first."
				return nil
			}
			s.notice = ""
			s.input.Reset()
			return s.sync()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	return nil
}

func (s *SessionScreen) handleDwell(msg dwellMsg) tea.Cmd {
	sess := s.rt.Session()
	if msg.sessionID != sess.ID || msg.step != sess.StepIndex {
		return nil
	}
	if !s.rt.Continue() {
		return nil
	}
	return s.sync()
}

// sync hands queued pacing ticks to Bubble Tea and rebuilds the step widgets
// when the runtime moved to another step, session or phase.
func (s *SessionScreen) sync() tea.Cmd {
	cmds := []tea.Cmd{s.pacer.drain()}

	sess := s.rt.Session()
	if sess.ID != s.shownSession || sess.StepIndex != s.shownStep {
		s.shownSession, s.shownStep = sess.ID, sess.StepIndex
		cmds = append(cmds, s.present(sess))
	}

	phase := s.rt.Phase()
	if phase != s.shownPhase && phase == conversation.PhaseCompleted {
		s.buttons = components.NewButtonRow(
			components.NewButton("Try again", true, func() tea.Cmd {
				return func() tea.Msg { return restartMsg{} }
			}),
			components.NewButton("Continue", false, func() tea.Cmd {
				return func() tea.Msg { return finishMsg{} }
			}),
		)
	}
	s.shownPhase = phase

	return tea.Batch(cmds...)
}

// present prepares the widget for the step the runtime is showing.
func (s *SessionScreen) present(sess conversation.Session) tea.Cmd {
	switch st := s.rt.CurrentStep().(type) {
	case *scenario.ChoiceStep:
		labels := make([]string, len(st.Options))
		for i, o := range st.Options {
			labels[i] = o.Text
		}
		s.choices = components.NewMultiChoice(labels)
	case *scenario.InputStep:
		s.input.Reset()
		return s.input.Focus()
	case *scenario.PromptStep:
		if s.dwell <= 0 {
			return nil
		}
		id, step := sess.ID, sess.StepIndex
		return tea.Tick(s.dwell, func(time.Time) tea.Msg {
			return dwellMsg{sessionID: id, step: step}
		})
	}
	return nil
}

func (s *SessionScreen) finish() tea.Cmd {
	c, ok := s.rt.Complete()
	if !ok || s.recording {
		return nil
	}
	s.recording = true
	return func() tea.Msg {
		return recordedMsg{
			completion: c,
			outcome:    s.recorder.Record(context.Background(), c),
		}
	}
}

func (s *SessionScreen) inputActive() bool {
	if s.rt.Phase() != conversation.PhasePresenting {
		return false
	}
	_, ok := s.rt.CurrentStep().(*scenario.InputStep)
	return ok
}
