package session

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
)

// mockRecorder captures completions instead of persisting them.
type mockRecorder struct {
	completions []conversation.Completion
}

func (m *mockRecorder) Record(_ context.Context, c conversation.Completion) progress.Outcome {
	m.completions = append(m.completions, c)
	agg, unlocked := progress.Apply(progress.New(), c.Stars)
	return progress.Outcome{Aggregate: agg, Unlocked: unlocked}
}

func testScenario() scenario.Scenario {
	return scenario.Scenario{
		ID:         "swings",
		Title:      "Taking Turns",
		Theme:      scenario.ThemePlayground,
		Difficulty: scenario.Beginner,
		Emoji:      "🛝",
		Situation:  "You are waiting for the swings.",
		Steps: []scenario.Step{
			&scenario.PromptStep{ID: "look", Content: "Another kid is on the swing."},
			&scenario.ChoiceStep{ID: "ask", Content: "What do you say?", Options: []scenario.Option{
				{ID: "polite", Text: "Can I have a turn after you?", Correct: true, Feedback: "Nice asking!", Stars: 2},
				{ID: "grab", Text: "Get off!", Feedback: "Let's try asking kindly."},
			}},
			&scenario.InputStep{ID: "thank", Content: "They let you swing. What now?", Hint: "Say thanks"},
		},
	}
}

func testLearner() profile.Profile {
	return profile.Profile{Name: "Ada", Age: 8, LearningLevel: scenario.Beginner, Avatar: "🦊"}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSessionScreen(t *testing.T, dwell time.Duration) (*SessionScreen, *mockRecorder) {
	t.Helper()
	rec := &mockRecorder{}
	s, err := New(testScenario(), testLearner(), rec, Config{
		Delays:      conversation.Delays{Feedback: time.Second, Advance: 2 * time.Second},
		PromptDwell: dwell,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	s.Init()
	return s, rec
}

// flush fires pending pacing tasks in order until none are left.
func flush(s *SessionScreen) {
	for s.pacer.pending() > 0 {
		var next uint64
		for id := range s.pacer.tasks {
			if next == 0 || id < next {
				next = id
			}
		}
		s.Update(paceMsg{owner: s.pacer, id: next})
	}
}

func TestSessionScreen_Title(t *testing.T) {
	s, _ := testSessionScreen(t, 0)
	if got := s.Title(); got != "🛝 Taking Turns" {
		t.Errorf("Title = %q", got)
	}
}

func TestSessionScreen_GreetingShown(t *testing.T) {
	s, _ := testSessionScreen(t, 0)
	view := s.View(100, 30)
	if !strings.Contains(view, "Hi Ada!") {
		t.Error("expected greeting in view")
	}
	if !strings.Contains(view, "Another kid is on the swing.") {
		t.Error("expected opening step under the greeting")
	}
	if !strings.Contains(view, "Step 1 of 3") {
		t.Error("expected step counter in view")
	}
}

func TestSessionScreen_NoSteps(t *testing.T) {
	sc := testScenario()
	sc.Steps = nil
	if _, err := New(sc, testLearner(), &mockRecorder{}, Config{}); err == nil {
		t.Fatal("expected error for a scenario without steps")
	}
}

func TestSessionScreen_FullRun(t *testing.T) {
	s, rec := testSessionScreen(t, 0)

	// Prompt: Enter continues.
	s.Update(specialKey(tea.KeyEnter))
	if _, ok := s.rt.CurrentStep().(*scenario.ChoiceStep); !ok {
		t.Fatalf("expected choice step, got %T", s.rt.CurrentStep())
	}
	if !strings.Contains(s.View(100, 30), "A)") {
		t.Error("expected lettered options in view")
	}

	// Choice: pick A.
	s.Update(keyPress('a'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Error("expected pacing command after answering")
	}
	if s.rt.Phase() != conversation.PhaseEvaluating {
		t.Fatalf("Phase = %v, want evaluating", s.rt.Phase())
	}

	// Keys are ignored while evaluating.
	s.Update(keyPress('b'))
	s.Update(specialKey(tea.KeyEnter))
	if got := len(s.rt.Session().Transcript); got != 3 {
		t.Errorf("transcript length = %d, want 3", got)
	}

	flush(s)
	if _, ok := s.rt.CurrentStep().(*scenario.InputStep); !ok {
		t.Fatalf("expected input step, got %T", s.rt.CurrentStep())
	}
	if got := s.rt.Session().Stars; got != 2 {
		t.Errorf("Stars = %d, want 2", got)
	}
	if !strings.Contains(s.View(100, 30), "Say thanks") {
		t.Error("expected input hint in view")
	}

	// Input: a good reply.
	s.input.SetValue("thank you so much, that was kind")
	s.Update(specialKey(tea.KeyEnter))
	flush(s)

	if s.rt.Phase() != conversation.PhaseCompleted {
		t.Fatalf("Phase = %v, want completed", s.rt.Phase())
	}
	if got := s.rt.Session().Stars; got != 5 {
		t.Errorf("Stars = %d, want 5", got)
	}
	if !strings.Contains(s.View(100, 30), "Try again") {
		t.Error("expected completion buttons")
	}
	if len(rec.completions) != 0 {
		t.Error("nothing should be recorded before Continue")
	}
}

func TestSessionScreen_BlankReplyRejected(t *testing.T) {
	s, _ := testSessionScreen(t, 0)
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))
	flush(s)

	s.input.SetValue("   ")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for a blank reply")
	}
	if s.notice == "" {
		t.Error("expected a notice for a blank reply")
	}
	if s.rt.Phase() != conversation.PhasePresenting {
		t.Errorf("Phase = %v, want presenting", s.rt.Phase())
	}
}

func completeRun(t *testing.T, s *SessionScreen) {
	t.Helper()
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))
	flush(s)
	s.input.SetValue("ok")
	s.Update(specialKey(tea.KeyEnter))
	flush(s)
	if s.rt.Phase() != conversation.PhaseCompleted {
		t.Fatalf("Phase = %v, want completed", s.rt.Phase())
	}
}

func TestSessionScreen_TryAgain(t *testing.T) {
	s, rec := testSessionScreen(t, 0)
	completeRun(t, s)
	firstID := s.rt.Session().ID

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected command from Try again")
	}
	s.Update(cmd())

	sess := s.rt.Session()
	if sess.ID == firstID {
		t.Error("expected a new session ID after restart")
	}
	if sess.StepIndex != 0 || sess.Stars != 0 || len(sess.Transcript) != 1 {
		t.Errorf("restart state = step %d, stars %d, %d messages", sess.StepIndex, sess.Stars, len(sess.Transcript))
	}
	if len(rec.completions) != 0 {
		t.Error("restart should not record progress")
	}
}

func TestSessionScreen_ContinueRecords(t *testing.T) {
	s, rec := testSessionScreen(t, 0)
	completeRun(t, s)

	s.Update(specialKey(tea.KeyRight))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected command from Continue")
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected record command")
	}
	msg := cmd()
	if len(rec.completions) != 1 {
		t.Fatalf("recorded %d completions, want 1", len(rec.completions))
	}
	if got := rec.completions[0]; got.ScenarioID != "swings" || got.Stars != 3 {
		t.Errorf("completion = %+v", got)
	}

	_, cmd = s.Update(msg)
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg to the summary")
	}

	// A second Continue is ignored.
	_, cmd = s.Update(finishMsg{})
	if cmd != nil {
		t.Error("expected no second record")
	}
}

func TestSessionScreen_ForeignPaceIgnored(t *testing.T) {
	s, _ := testSessionScreen(t, 0)
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('a'))
	s.Update(specialKey(tea.KeyEnter))

	other := newPacer()
	s.Update(paceMsg{owner: other, id: 1})
	if s.rt.Phase() != conversation.PhaseEvaluating {
		t.Error("a tick from another screen must not fire tasks")
	}
}

func TestSessionScreen_CloseDropsPending(t *testing.T) {
	s, _ := testSessionScreen(t, 0)
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('a'))
	s.Update(specialKey(tea.KeyEnter))
	if s.pacer.pending() == 0 {
		t.Fatal("expected a pending feedback task")
	}

	s.Close()
	if s.pacer.pending() != 0 {
		t.Errorf("pending = %d after Close, want 0", s.pacer.pending())
	}
	if !s.rt.Closed() {
		t.Error("runtime should be closed")
	}
}

func TestSessionScreen_PromptDwell(t *testing.T) {
	rec := &mockRecorder{}
	s, err := New(testScenario(), testLearner(), rec, Config{PromptDwell: 3 * time.Second})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected dwell tick for an opening prompt")
	}
	sess := s.rt.Session()

	// A stale dwell does nothing.
	s.Update(dwellMsg{sessionID: "old", step: 0})
	if s.rt.Session().StepIndex != 0 {
		t.Fatal("stale dwell should be ignored")
	}

	s.Update(dwellMsg{sessionID: sess.ID, step: 0})
	if s.rt.Session().StepIndex != 1 {
		t.Errorf("StepIndex = %d, want 1 after dwell", s.rt.Session().StepIndex)
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	s, _ := testSessionScreen(t, 0)
	if hints := s.KeyHints(); len(hints) != 2 || hints[0].Description != "Continue" {
		t.Errorf("prompt hints = %+v", hints)
	}
	s.Update(specialKey(tea.KeyEnter))
	if hints := s.KeyHints(); len(hints) != 3 {
		t.Errorf("choice hints = %+v", hints)
	}
}

func TestPacer(t *testing.T) {
	p := newPacer()
	var ran []int
	p.After(time.Second, func() { ran = append(ran, 1) })
	cancel := p.After(time.Second, func() { ran = append(ran, 2) })

	if cmd := p.drain(); cmd == nil {
		t.Fatal("expected queued ticks")
	}
	if cmd := p.drain(); cmd != nil {
		t.Error("drain should empty the queue")
	}

	cancel()
	p.fire(2)
	p.fire(1)
	p.fire(1)

	if len(ran) != 1 || ran[0] != 1 {
		t.Errorf("ran = %v, want [1]", ran)
	}
}
