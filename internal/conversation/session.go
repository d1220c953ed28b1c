package conversation

import (
	"slices"

	"github.com/abhisek/talkbuddy/internal/scenario"
)

// Origin identifies who authored a transcript message.
type Origin string

const (
	OriginSystem  Origin = "system"
	OriginLearner Origin = "learner"
)

// Message is one transcript line.
type Message struct {
	Seq     int // 1-based, strictly increasing within a session
	Origin  Origin
	Content string
	Emotion scenario.Emotion // empty for learner messages and untagged lines
}

// Phase represents where the runtime is in the current step.
type Phase int

const (
	PhasePresenting Phase = iota // current step is shown and accepts input
	PhaseEvaluating              // a submission is being paced
	PhaseCompleted               // the last step has been answered
)

func (p Phase) String() string {
	switch p {
	case PhasePresenting:
		return "presenting"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is one in-progress attempt at a scenario.
type Session struct {
	ID         string
	ScenarioID string
	StepIndex  int
	Transcript []Message
	Stars      int
	Completed  bool
}

func (s Session) clone() Session {
	s.Transcript = slices.Clone(s.Transcript)
	return s
}

// Completion is emitted once a session finishes. The orchestration layer
// forwards it to the progress aggregator.
type Completion struct {
	ScenarioID string
	SessionID  string
	Stars      int
}
