package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render("  " + b.Label)
}

// ButtonRow is a horizontal group of buttons with one active at a time.
type ButtonRow struct {
	Buttons []Button
	Active  int
}

// NewButtonRow creates a row with the first button active.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	r.setActive(0)
	return r
}

func (r *ButtonRow) setActive(i int) {
	if i < 0 || i >= len(r.Buttons) {
		return
	}
	r.Active = i
	for j := range r.Buttons {
		r.Buttons[j].Active = j == i
	}
}

// Update moves focus with left/right/tab and presses the active button on enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.setActive((r.Active + len(r.Buttons) - 1) % len(r.Buttons))
		return r, nil
	case "right", "l", "tab":
		r.setActive((r.Active + 1) % len(r.Buttons))
		return r, nil
	}
	var cmd tea.Cmd
	r.Buttons[r.Active], cmd = r.Buttons[r.Active].Update(msg)
	return r, cmd
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	views := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		views[i] = b.View()
	}
	return strings.Join(views, "   ")
}
