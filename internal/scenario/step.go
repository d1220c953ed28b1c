package scenario

// StepKind names a step variant.
type StepKind string

const (
	KindPrompt StepKind = "prompt"
	KindChoice StepKind = "choice"
	KindInput  StepKind = "input"
)

// Step is one beat of a scripted dialogue.
//
// The interface is sealed: the only implementations are *PromptStep,
// *ChoiceStep and *InputStep, and consumers switch over exactly those three.
type Step interface {
	StepID() string
	Kind() StepKind
	StepContent() string
	StepEmotion() Emotion
	isStep()
}

// PromptStep is display-only narration. It takes no answer.
type PromptStep struct {
	ID      string
	Content string
	Emotion Emotion
}

// ChoiceStep asks the learner to pick one of several options.
type ChoiceStep struct {
	ID      string
	Content string
	Emotion Emotion
	Options []Option
}

// InputStep asks the learner for a free-text reply.
type InputStep struct {
	ID      string
	Content string
	Emotion Emotion
	Hint    string // empty when the step has no hint
}

// Option is one selectable reply within a ChoiceStep.
type Option struct {
	ID       string
	Text     string
	Correct  bool
	Feedback string
	Stars    int // credited only when Correct
}

func (s *PromptStep) StepID() string       { return s.ID }
func (s *PromptStep) Kind() StepKind       { return KindPrompt }
func (s *PromptStep) StepContent() string  { return s.Content }
func (s *PromptStep) StepEmotion() Emotion { return s.Emotion }
func (*PromptStep) isStep()                {}

func (s *ChoiceStep) StepID() string       { return s.ID }
func (s *ChoiceStep) Kind() StepKind       { return KindChoice }
func (s *ChoiceStep) StepContent() string  { return s.Content }
func (s *ChoiceStep) StepEmotion() Emotion { return s.Emotion }
func (*ChoiceStep) isStep()                {}

func (s *InputStep) StepID() string       { return s.ID }
func (s *InputStep) Kind() StepKind       { return KindInput }
func (s *InputStep) StepContent() string  { return s.Content }
func (s *InputStep) StepEmotion() Emotion { return s.Emotion }
func (*InputStep) isStep()                {}

// Option returns the option with the given ID.
func (s *ChoiceStep) Option(id string) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// MaxStars returns the most stars a correct answer to this step can earn.
func (s *ChoiceStep) MaxStars() int {
	best := 0
	for _, o := range s.Options {
		if o.Correct && o.Stars > best {
			best = o.Stars
		}
	}
	return best
}
