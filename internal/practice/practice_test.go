package practice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/store"
)

func testScenario() scenario.Scenario {
	return scenario.Scenario{
		ID:        "swings",
		Title:     "Taking Turns",
		Emoji:     "🛝",
		Situation: "You are waiting for the swings.",
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

func run(t *testing.T, input string, rec Recorder) (string, progress.Outcome, error) {
	t.Helper()
	var out bytes.Buffer
	outcome, err := Run(context.Background(), testScenario(), Options{
		In:       strings.NewReader(input),
		Out:      &out,
		Learner:  profile.Profile{Name: "Ada"},
		Recorder: rec,
		Instant:  true,
	})
	return out.String(), outcome, err
}

func TestRun_FullConversation(t *testing.T) {
	svc := progress.NewService(store.NewMemory(), nil)
	out, outcome, err := run(t, "\nx\nA\n\nthank you so much for sharing\n", svc)
	require.NoError(t, err)

	assert.Contains(t, out, "🛝 Taking Turns")
	assert.Contains(t, out, "Hi Ada! You are waiting for the swings.")
	assert.Contains(t, out, "Another kid is on the swing.")
	assert.Contains(t, out, "A) Can I have a turn after you?")
	assert.Contains(t, out, "Pick a letter from A to B.")
	assert.Contains(t, out, "Nice asking!")
	assert.Contains(t, out, "Type a few words first.")
	assert.Contains(t, out, "💡 Say thanks")
	assert.Contains(t, out, "You earned 5 of 5 stars.")

	assert.Equal(t, 5, outcome.Aggregate.Stars)
	assert.Equal(t, 1, outcome.Aggregate.CompletedScenarios)
	assert.Len(t, svc.History(context.Background()), 1)
}

func TestRun_WithoutRecorder(t *testing.T) {
	out, outcome, err := run(t, "\n2\nok\n", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Let's try asking kindly.")
	assert.Contains(t, out, "You earned 1 of 5 stars.")
	assert.Zero(t, outcome.Aggregate.Stars)
}

func TestRun_InputClosed(t *testing.T) {
	_, _, err := run(t, "\nA\n", nil)
	assert.True(t, errors.Is(err, ErrInputClosed), "err = %v", err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testScenario(), Options{In: strings.NewReader("\n"), Out: &bytes.Buffer{}, Instant: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_CancelledWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := Run(ctx, testScenario(), Options{In: pr, Out: &out, Instant: true})
		done <- err
	}()

	// No input ever arrives; only the cancel can end the run.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_NoSteps(t *testing.T) {
	sc := testScenario()
	sc.Steps = nil
	_, err := Run(context.Background(), sc, Options{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	assert.ErrorIs(t, err, conversation.ErrNoSteps)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"a", 0, true},
		{"B", 1, true},
		{" c ", 2, true},
		{"2", 1, true},
		{"0", 0, false},
		{"5", 0, false},
		{"d", 0, false},
		{"ab", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.in, 3)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseChoice(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
