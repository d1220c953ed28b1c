package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/evaluator"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/ui/components"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

const buddyAvatar = "🤖"

func (s *SessionScreen) View(width, height int) string {
	cw := chatWidth(width)

	status := s.renderStatus(cw)
	controls := s.renderControls(cw)

	transcriptHeight := height - lipgloss.Height(status) - lipgloss.Height(controls) - 2
	transcript := s.renderTranscript(cw, transcriptHeight)

	content := lipgloss.JoinVertical(lipgloss.Left, status, "", transcript, "", controls)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// chatWidth keeps the chat column readable on wide terminals.
func chatWidth(width int) int {
	w := width - 8
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	return w
}

// renderStatus shows step progress and the stars earned so far.
func (s *SessionScreen) renderStatus(cw int) string {
	sess := s.rt.Session()
	step := fmt.Sprintf("Step %d of %d", sess.StepIndex+1, s.rt.StepCount())
	stars := theme.Stars.Render(fmt.Sprintf("★ %d", sess.Stars))

	left := lipgloss.NewStyle().Foreground(theme.TextDim).Render(step)
	gap := cw - lipgloss.Width(left) - lipgloss.Width(stars)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + stars
}

// renderTranscript renders the chat bubbles, keeping only the newest lines
// that fit in height.
func (s *SessionScreen) renderTranscript(cw, height int) string {
	if height < 1 {
		return ""
	}
	bubbleWidth := cw * 3 / 4

	var blocks []string
	for i, m := range s.rt.Session().Transcript {
		blocks = append(blocks, renderMessage(m, s.learner.Avatar, bubbleWidth, cw))
		if i == 0 {
			// The opening step is shown under the greeting; later steps
			// arrive in the transcript as the runtime advances.
			first := s.rt.Scenario().Steps[0]
			opening := conversation.Message{
				Origin:  conversation.OriginSystem,
				Content: first.StepContent(),
				Emotion: first.StepEmotion(),
			}
			blocks = append(blocks, renderMessage(opening, s.learner.Avatar, bubbleWidth, cw))
		}
	}
	lines := strings.Split(strings.Join(blocks, "\n"), "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

func renderMessage(m conversation.Message, avatar string, bubbleWidth, cw int) string {
	if m.Origin == conversation.OriginLearner {
		if avatar == "" {
			avatar = "🙂"
		}
		bubble := theme.LearnerBubble.MaxWidth(bubbleWidth).Render(m.Content)
		return lipgloss.PlaceHorizontal(cw, lipgloss.Right,
			lipgloss.JoinHorizontal(lipgloss.Bottom, bubble, " "+avatar))
	}

	text := m.Content
	if icon := m.Emotion.Icon(); icon != "" {
		text = icon + " " + text
	}
	bubble := theme.BuddyBubble.MaxWidth(bubbleWidth).Render(text)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, buddyAvatar+" ", bubble)
}

// renderControls renders the widget for the current phase and step.
func (s *SessionScreen) renderControls(cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	switch s.rt.Phase() {
	case conversation.PhaseEvaluating:
		return dim.Render("TalkBuddy is thinking...")
	case conversation.PhaseCompleted:
		return s.renderCompletion(cw)
	}

	current := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw)

	switch st := s.rt.CurrentStep().(type) {
	case *scenario.ChoiceStep:
		return current.Render("What would you say?") + "\n\n" + s.choices.View()
	case *scenario.InputStep:
		var b strings.Builder
		if st.Hint != "" {
			b.WriteString(dim.Render("💡 " + st.Hint))
			b.WriteString("\n")
		}
		b.WriteString(s.input.View())
		if s.notice != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
		}
		return b.String()
	case *scenario.PromptStep:
		return dim.Render("Press Enter when you are ready")
	}
	return ""
}

func (s *SessionScreen) renderCompletion(cw int) string {
	stars := s.rt.Session().Stars
	sc := s.rt.Scenario()
	best := sc.MaxStars(evaluator.GoodStars)

	title := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render("🎉 Great job! You finished the conversation.")
	earned := theme.Stars.Render(fmt.Sprintf("You earned %d of %d stars", stars, best))

	card := components.ResultCard(title+"\n\n"+earned, stars, best, cw, theme.Success)
	return card + "\n\n" + lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.buttons.View())
}
