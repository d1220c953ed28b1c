// Package conversation drives one learner through a scripted scenario:
// it presents steps, accepts choices and free-text replies, scores them,
// and builds the transcript.
package conversation

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/talkbuddy/internal/evaluator"
	"github.com/abhisek/talkbuddy/internal/scenario"
)

// ErrNoSteps is returned when starting a scenario that has nothing to present.
var ErrNoSteps = errors.New("scenario has no steps")

// Option configures a Runtime.
type Option func(*Runtime)

// WithScheduler sets the scheduler used for pacing. Defaults to Immediate.
func WithScheduler(s Scheduler) Option {
	return func(r *Runtime) { r.sched = s }
}

// WithDelays overrides the pacing delays.
func WithDelays(d Delays) Option {
	return func(r *Runtime) { r.delays = d }
}

// WithListener registers fn to be called with every appended message.
func WithListener(fn func(Message)) Option {
	return func(r *Runtime) { r.listener = fn }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// Runtime is the state machine for one scenario session.
type Runtime struct {
	sc       scenario.Scenario
	learner  string
	sched    Scheduler
	delays   Delays
	listener func(Message)
	logger   *slog.Logger

	session Session
	phase   Phase
	closed  bool

	// epoch is bumped on Restart and Close; tasks from an older epoch are dropped.
	epoch   uint64
	nextID  uint64
	pending map[uint64]CancelFunc
}

// New starts a session for learnerName on sc.
func New(sc scenario.Scenario, learnerName string, opts ...Option) (*Runtime, error) {
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("start %q: %w", sc.ID, ErrNoSteps)
	}

	r := &Runtime{
		sc:      sc,
		learner: learnerName,
		sched:   Immediate,
		delays:  DefaultDelays(),
		pending: make(map[uint64]CancelFunc),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	r.reset()
	return r, nil
}

// reset puts the runtime at step 0 with a single greeting message.
func (r *Runtime) reset() {
	r.session = Session{
		ID:         uuid.New().String(),
		ScenarioID: r.sc.ID,
	}
	r.phase = PhasePresenting
	r.appendMessage(OriginSystem, fmt.Sprintf("Hi %s! %s", r.learner, r.sc.Situation), scenario.EmotionNone)
	r.logger.Debug("session started", "scenario", r.sc.ID, "session", r.session.ID)
}

// SubmitChoice answers the current choice step. It returns false, without
// changing anything, unless the runtime is presenting a choice step with
// ID stepID that has an option optionID.
func (r *Runtime) SubmitChoice(stepID, optionID string) bool {
	if !r.accepting() {
		return false
	}
	step, ok := r.CurrentStep().(*scenario.ChoiceStep)
	if !ok || step.ID != stepID {
		return false
	}
	opt, ok := step.Option(optionID)
	if !ok {
		return false
	}

	emotion := scenario.EmotionGentle
	stars := 0
	if opt.Correct {
		emotion = scenario.EmotionHappy
		stars = opt.Stars
	}

	r.logger.Debug("choice submitted", "session", r.session.ID, "step", stepID, "option", optionID, "correct", opt.Correct)
	r.appendMessage(OriginLearner, opt.Text, scenario.EmotionNone)
	r.scheduleFeedback(opt.Feedback, emotion, stars)
	return true
}

// SubmitFreeText answers the current input step. Whitespace-only text is
// rejected and false is returned.
func (r *Runtime) SubmitFreeText(text string) bool {
	if !r.accepting() || strings.TrimSpace(text) == "" {
		return false
	}
	if _, ok := r.CurrentStep().(*scenario.InputStep); !ok {
		return false
	}

	res := evaluator.Evaluate(text)
	r.logger.Debug("reply submitted", "session", r.session.ID, "step", r.CurrentStep().StepID(), "category", res.Category)
	r.appendMessage(OriginLearner, text, scenario.EmotionNone)
	r.scheduleFeedback(res.Feedback, res.Emotion, res.Stars)
	return true
}

// Continue moves past the current prompt step. Prompt steps take no answer,
// so the caller decides when the learner has read them.
func (r *Runtime) Continue() bool {
	if !r.accepting() {
		return false
	}
	if _, ok := r.CurrentStep().(*scenario.PromptStep); !ok {
		return false
	}
	r.advance()
	return true
}

// scheduleFeedback enters the evaluating phase, then appends feedback and
// credits stars after the feedback delay, then advances after the advance delay.
func (r *Runtime) scheduleFeedback(feedback string, emotion scenario.Emotion, stars int) {
	r.phase = PhaseEvaluating
	r.schedule(r.delays.Feedback, func() {
		r.appendMessage(OriginSystem, feedback, emotion)
		r.session.Stars += stars
		r.schedule(r.delays.Advance, r.advance)
	})
}

// advance moves to the next step, or completes the session on the last one.
func (r *Runtime) advance() {
	if r.session.StepIndex >= len(r.sc.Steps)-1 {
		r.session.Completed = true
		r.phase = PhaseCompleted
		r.logger.Debug("session completed", "session", r.session.ID, "stars", r.session.Stars)
		return
	}
	r.session.StepIndex++
	next := r.sc.Steps[r.session.StepIndex]
	r.appendMessage(OriginSystem, next.StepContent(), next.StepEmotion())
	r.phase = PhasePresenting
}

// schedule runs fn after d unless the session is restarted or closed first.
func (r *Runtime) schedule(d time.Duration, fn func()) {
	epoch := r.epoch
	r.nextID++
	id := r.nextID

	done := false
	cancel := r.sched.After(d, func() {
		done = true
		delete(r.pending, id)
		if r.closed || r.epoch != epoch {
			return
		}
		fn()
	})
	if !done {
		r.pending[id] = cancel
	}
}

func (r *Runtime) cancelPending() {
	for id, cancel := range r.pending {
		cancel()
		delete(r.pending, id)
	}
	r.epoch++
}

// Restart abandons the current attempt and starts over with a new session ID.
func (r *Runtime) Restart() {
	if r.closed {
		return
	}
	r.cancelPending()
	r.logger.Debug("session restarted", "scenario", r.sc.ID, "previous", r.session.ID)
	r.reset()
}

// Close cancels pending work. Every later call is a no-op.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.cancelPending()
	r.closed = true
}

// Complete returns the completion event once the session has finished.
func (r *Runtime) Complete() (Completion, bool) {
	if !r.session.Completed {
		return Completion{}, false
	}
	return Completion{
		ScenarioID: r.sc.ID,
		SessionID:  r.session.ID,
		Stars:      r.session.Stars,
	}, true
}

func (r *Runtime) accepting() bool {
	return !r.closed && r.phase == PhasePresenting
}

func (r *Runtime) appendMessage(origin Origin, content string, emotion scenario.Emotion) {
	msg := Message{
		Seq:     len(r.session.Transcript) + 1,
		Origin:  origin,
		Content: content,
		Emotion: emotion,
	}
	r.session.Transcript = append(r.session.Transcript, msg)
	if r.listener != nil {
		r.listener(msg)
	}
}

// Session returns a copy of the current session state.
func (r *Runtime) Session() Session { return r.session.clone() }

// CurrentStep returns the step being presented, or the last step once completed.
func (r *Runtime) CurrentStep() scenario.Step { return r.sc.Steps[r.session.StepIndex] }

// Phase returns the current phase.
func (r *Runtime) Phase() Phase { return r.phase }

// Scenario returns the scenario being played.
func (r *Runtime) Scenario() scenario.Scenario { return r.sc }

// StepCount returns the number of steps in the scenario.
func (r *Runtime) StepCount() int { return len(r.sc.Steps) }

// Closed reports whether Close has been called.
func (r *Runtime) Closed() bool { return r.closed }
