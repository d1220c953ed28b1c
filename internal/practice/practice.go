// Package practice plays a scenario as a plain line-by-line conversation on
// a reader and writer, for terminals where the full-screen UI is unwanted.
package practice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/evaluator"
	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/scenario"
)

// ErrInputClosed is returned when the input ends before the scenario does.
var ErrInputClosed = errors.New("input closed before the conversation finished")

// Recorder stores a finished session. *progress.Service implements it.
type Recorder interface {
	Record(ctx context.Context, c conversation.Completion) progress.Outcome
}

// Options configures a line-mode session.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Learner  profile.Profile
	Recorder Recorder
	Delays   conversation.Delays
	// Instant skips the pacing pauses.
	Instant bool
	Logger  *slog.Logger
}

// Sleeper pauses the calling goroutine, so every task still runs on the
// goroutine that drives the runtime.
var Sleeper conversation.Scheduler = conversation.SchedulerFunc(func(d time.Duration, fn func()) conversation.CancelFunc {
	time.Sleep(d)
	fn()
	return func() {}
})

// Run plays sc to completion and records the result.
func Run(ctx context.Context, sc scenario.Scenario, opts Options) (progress.Outcome, error) {
	out := opts.Out
	sched := Sleeper
	if opts.Instant {
		sched = conversation.Immediate
	}

	fmt.Fprintf(out, "%s %s\n\n", sc.Emoji, sc.Title)
	rt, err := conversation.New(sc, opts.Learner.DisplayName(),
		conversation.WithScheduler(sched),
		conversation.WithDelays(opts.Delays),
		conversation.WithLogger(opts.Logger),
		conversation.WithListener(func(m conversation.Message) {
			if m.Origin == conversation.OriginSystem {
				fmt.Fprintln(out, formatLine(m))
			}
		}),
	)
	if err != nil {
		return progress.Outcome{}, err
	}
	defer rt.Close()

	// The greeting came through the listener; the opening step is not part
	// of the transcript.
	first := sc.Steps[0]
	fmt.Fprintln(out, formatLine(conversation.Message{Content: first.StepContent(), Emotion: first.StepEmotion()}))

	lines := newLineReader(opts.In)
	defer lines.stop()
	for rt.Phase() != conversation.PhaseCompleted {
		if err := ctx.Err(); err != nil {
			return progress.Outcome{}, err
		}
		if err := playStep(ctx, rt, lines, out); err != nil {
			return progress.Outcome{}, err
		}
	}

	c, _ := rt.Complete()
	best := sc.MaxStars(evaluator.GoodStars)
	fmt.Fprintf(out, "\n🎉 Great job! You earned %d of %d stars.\n", c.Stars, best)

	if opts.Recorder == nil {
		return progress.Outcome{}, nil
	}
	outcome := opts.Recorder.Record(ctx, c)
	agg := outcome.Aggregate
	fmt.Fprintf(out, "Total ★ %d · Level %d · %d more to level %d\n",
		agg.Stars, agg.Level, agg.StarsToNextLevel(), agg.Level+1)
	for _, b := range outcome.Unlocked {
		fmt.Fprintf(out, "New badge: %s %s\n", b.Icon(), b)
	}
	return outcome, nil
}

// playStep reads one answer for the current step and submits it.
func playStep(ctx context.Context, rt *conversation.Runtime, lines *lineReader, out io.Writer) error {
	switch st := rt.CurrentStep().(type) {
	case *scenario.PromptStep:
		fmt.Fprint(out, "(press Enter) ")
		if _, err := lines.next(ctx); err != nil {
			return err
		}
		rt.Continue()

	case *scenario.ChoiceStep:
		for i, o := range st.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+i, o.Text)
		}
		for {
			fmt.Fprint(out, "> ")
			line, err := lines.next(ctx)
			if err != nil {
				return err
			}
			i, ok := parseChoice(line, len(st.Options))
			if ok && rt.SubmitChoice(st.ID, st.Options[i].ID) {
				break
			}
			fmt.Fprintf(out, "Pick a letter from A to %c.\n", 'A'+len(st.Options)-1)
		}

	case *scenario.InputStep:
		if st.Hint != "" {
			fmt.Fprintf(out, "💡 %s\n", st.Hint)
		}
		for {
			fmt.Fprint(out, "> ")
			line, err := lines.next(ctx)
			if err != nil {
				return err
			}
			if rt.SubmitFreeText(line) {
				break
			}
			fmt.Fprintln(out, "Type a few words first.")
		}
	}
	return nil
}

// lineReader scans input on its own goroutine so a cancelled context ends
// the session while a read is still blocked. The goroutine exits once its
// pending read returns.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string), done: make(chan struct{})}
	go func() {
		defer close(lr.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lr.lines <- sc.Text():
			case <-lr.done:
				return
			}
		}
		lr.err = sc.Err()
	}()
	return lr
}

func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if ok {
			return line, nil
		}
		if lr.err != nil {
			return "", fmt.Errorf("read answer: %w", lr.err)
		}
		return "", ErrInputClosed
	}
}

func (lr *lineReader) stop() { close(lr.done) }

// parseChoice accepts a letter (a, B) or a 1-based number.
func parseChoice(s string, n int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i - 1, i >= 1 && i <= n
	}
	if len(s) != 1 {
		return 0, false
	}
	c := s[0] | 0x20
	i := int(c) - 'a'
	return i, i >= 0 && i < n
}

func formatLine(m conversation.Message) string {
	text := m.Content
	if icon := m.Emotion.Icon(); icon != "" {
		text = icon + " " + text
	}
	return "🤖 " + text
}
