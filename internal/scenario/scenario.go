// Package scenario defines scripted social-skill dialogues and the embedded
// catalog that ships with talkbuddy.
package scenario

import (
	"encoding/json"
	"fmt"
)

// Scenario is a scripted dialogue: a situation followed by an ordered list of steps.
type Scenario struct {
	ID          string
	Title       string
	Description string
	Theme       Theme
	Difficulty  Difficulty
	Emoji       string
	Situation   string
	Steps       []Step
}

// MaxStars returns the most stars a perfect run can earn. Input steps count
// as a good free-text reply.
func (s *Scenario) MaxStars(goodReplyStars int) int {
	total := 0
	for _, st := range s.Steps {
		switch st := st.(type) {
		case *ChoiceStep:
			total += st.MaxStars()
		case *InputStep:
			total += goodReplyStars
		case *PromptStep:
		}
	}
	return total
}

// rawOption, rawStep and rawScenario mirror the catalog's JSON layout.
type rawOption struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
	Stars    int    `json:"stars"`
}

type rawStep struct {
	ID      string      `json:"id"`
	Type    StepKind    `json:"type"`
	Content string      `json:"content"`
	Emotion Emotion     `json:"emotion,omitempty"`
	Hint    string      `json:"hint,omitempty"`
	Options []rawOption `json:"options,omitempty"`
}

type rawScenario struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Theme       Theme      `json:"theme"`
	Difficulty  Difficulty `json:"difficulty"`
	Emoji       string     `json:"emoji"`
	Situation   string     `json:"situation"`
	Steps       []rawStep  `json:"steps"`
}

// UnmarshalJSON decodes a scenario, turning each step's "type" tag into the
// matching Step implementation.
func (s *Scenario) UnmarshalJSON(data []byte) error {
	var raw rawScenario
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	steps := make([]Step, 0, len(raw.Steps))
	for i, rs := range raw.Steps {
		st, err := rs.toStep()
		if err != nil {
			return fmt.Errorf("scenario %q step %d: %w", raw.ID, i, err)
		}
		steps = append(steps, st)
	}

	*s = Scenario{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Theme:       raw.Theme,
		Difficulty:  raw.Difficulty,
		Emoji:       raw.Emoji,
		Situation:   raw.Situation,
		Steps:       steps,
	}
	return nil
}

func (rs rawStep) toStep() (Step, error) {
	switch rs.Type {
	case KindPrompt:
		return &PromptStep{ID: rs.ID, Content: rs.Content, Emotion: rs.Emotion}, nil
	case KindChoice:
		opts := make([]Option, len(rs.Options))
		for i, o := range rs.Options {
			opts[i] = Option(o)
		}
		return &ChoiceStep{ID: rs.ID, Content: rs.Content, Emotion: rs.Emotion, Options: opts}, nil
	case KindInput:
		return &InputStep{ID: rs.ID, Content: rs.Content, Emotion: rs.Emotion, Hint: rs.Hint}, nil
	default:
		return nil, fmt.Errorf("unknown step type %q", rs.Type)
	}
}

// MarshalJSON encodes a scenario in the catalog layout.
func (s Scenario) MarshalJSON() ([]byte, error) {
	raw := rawScenario{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Theme:       s.Theme,
		Difficulty:  s.Difficulty,
		Emoji:       s.Emoji,
		Situation:   s.Situation,
		Steps:       make([]rawStep, 0, len(s.Steps)),
	}
	for _, st := range s.Steps {
		rs := rawStep{ID: st.StepID(), Type: st.Kind(), Content: st.StepContent(), Emotion: st.StepEmotion()}
		switch st := st.(type) {
		case *ChoiceStep:
			for _, o := range st.Options {
				rs.Options = append(rs.Options, rawOption(o))
			}
		case *InputStep:
			rs.Hint = st.Hint
		case *PromptStep:
		}
		raw.Steps = append(raw.Steps, rs)
	}
	return json.Marshal(raw)
}
