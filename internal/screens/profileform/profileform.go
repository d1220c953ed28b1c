// Package profileform edits the learner profile: name, age, level,
// preferred themes and avatar.
package profileform

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/ui/components"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// SaveFunc persists a profile. profile.Save bound to a store satisfies it.
type SaveFunc func(ctx context.Context, p profile.Profile) error

// DoneFunc returns the navigation to run once the profile is saved.
type DoneFunc func(p profile.Profile) tea.Cmd

type field int

const (
	fieldName field = iota
	fieldAge
	fieldLevel
	fieldThemes
	fieldAvatar
	fieldSave
	fieldCount
)

// Form is the profile editor screen.
type Form struct {
	editing bool
	save    SaveFunc
	done    DoneFunc

	name        components.TextInput
	age         int
	level       int
	themes      map[scenario.Theme]bool
	themeCursor int
	avatar      int

	focus  field
	errMsg string
}

var _ screen.Screen = (*Form)(nil)
var _ screen.KeyHintProvider = (*Form)(nil)
var _ screen.InputCapturer = (*Form)(nil)

// New creates a form. A zero initial profile starts first-run setup with
// friendly defaults; otherwise the form edits initial.
func New(initial profile.Profile, save SaveFunc, done DoneFunc) *Form {
	f := &Form{
		editing: initial.Name != "",
		save:    save,
		done:    done,
		name:    components.NewTextInput("Your name", 40),
		age:     initial.Age,
		themes:  make(map[scenario.Theme]bool),
	}
	if !f.editing {
		f.age = 8
		initial.PreferredThemes = []scenario.Theme{scenario.ThemeFriends}
	}
	if f.age < profile.MinAge || f.age > profile.MaxAge {
		f.age = 8
	}
	f.name.SetValue(initial.Name)
	f.level = max(slices.Index(scenario.AllDifficulties(), initial.LearningLevel), 0)
	f.avatar = max(slices.Index(profile.Avatars, initial.Avatar), 0)
	for _, t := range initial.PreferredThemes {
		f.themes[t] = true
	}
	return f
}

func (f *Form) Init() tea.Cmd {
	return f.name.Focus()
}

func (f *Form) Title() string {
	if f.editing {
		return "My Profile"
	}
	return "Create Your Profile"
}

// CapturingInput reports whether the name field has focus.
func (f *Form) CapturingInput() bool {
	return f.focus == fieldName
}

func (f *Form) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓/Tab", Description: "Field"}}
	switch f.focus {
	case fieldAge, fieldLevel, fieldAvatar:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	case fieldThemes:
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Move"},
			layout.KeyHint{Key: "Space", Description: "Toggle"})
	case fieldSave:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save"})
	}
	if f.editing && f.focus != fieldName {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return hints
}

// Profile returns the profile as currently entered.
func (f *Form) Profile() profile.Profile {
	var themes []scenario.Theme
	for _, t := range scenario.AllThemes() {
		if f.themes[t] {
			themes = append(themes, t)
		}
	}
	return profile.Profile{
		Name:            strings.TrimSpace(f.name.Value()),
		Age:             f.age,
		LearningLevel:   scenario.AllDifficulties()[f.level],
		PreferredThemes: themes,
		Avatar:          profile.Avatars[f.avatar],
	}
}

func (f *Form) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.focus == fieldName {
			var cmd tea.Cmd
			f.name, cmd = f.name.Update(msg)
			return f, cmd
		}
		return f, nil
	}

	switch kmsg.String() {
	case "tab", "down":
		return f, f.moveFocus(1)
	case "shift+tab", "up":
		return f, f.moveFocus(-1)
	}

	switch f.focus {
	case fieldName:
		switch kmsg.String() {
		case "enter", "esc":
			return f, f.moveFocus(1)
		}
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return f, cmd

	case fieldAge:
		switch kmsg.String() {
		case "left", "h", "-":
			f.age = max(f.age-1, profile.MinAge)
		case "right", "l", "+":
			f.age = min(f.age+1, profile.MaxAge)
		case "enter":
			return f, f.moveFocus(1)
		}

	case fieldLevel:
		n := len(scenario.AllDifficulties())
		switch kmsg.String() {
		case "left", "h":
			f.level = (f.level + n - 1) % n
		case "right", "l":
			f.level = (f.level + 1) % n
		case "enter":
			return f, f.moveFocus(1)
		}

	case fieldThemes:
		all := scenario.AllThemes()
		switch kmsg.String() {
		case "left", "h":
			f.themeCursor = (f.themeCursor + len(all) - 1) % len(all)
		case "right", "l":
			f.themeCursor = (f.themeCursor + 1) % len(all)
		case "space", " ", "x":
			t := all[f.themeCursor]
			f.themes[t] = !f.themes[t]
		case "enter":
			return f, f.moveFocus(1)
		}

	case fieldAvatar:
		n := len(profile.Avatars)
		switch kmsg.String() {
		case "left", "h":
			f.avatar = (f.avatar + n - 1) % n
		case "right", "l":
			f.avatar = (f.avatar + 1) % n
		case "enter":
			return f, f.moveFocus(1)
		}

	case fieldSave:
		if kmsg.String() == "enter" {
			return f, f.submit()
		}
	}
	return f, nil
}

func (f *Form) moveFocus(delta int) tea.Cmd {
	f.focus = field((int(f.focus) + delta + int(fieldCount)) % int(fieldCount))
	if f.focus == fieldName {
		return f.name.Focus()
	}
	f.name.Blur()
	return nil
}

func (f *Form) submit() tea.Cmd {
	p := f.Profile()
	if err := f.save(context.Background(), p); err != nil {
		f.errMsg = saveError(err)
		return nil
	}
	f.errMsg = ""
	if f.done == nil {
		return nil
	}
	return f.done(p)
}

func saveError(err error) string {
	if errors.Is(err, profile.ErrInvalid) {
		msg := strings.TrimPrefix(err.Error(), profile.ErrInvalid.Error()+": ")
		return "Please check: " + msg
	}
	return fmt.Sprintf("Could not save: %v", err)
}

func (f *Form) View(width, height int) string {
	cw := components.ContentWidth(width)

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(9)
	focused := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(9)
	row := func(fl field, name, value string) string {
		l := label
		if f.focus == fl {
			l = focused
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, l.Render(name), value)
	}

	var rows []string
	rows = append(rows, row(fieldName, "Name", f.name.View()))
	rows = append(rows, row(fieldAge, "Age", f.spinner(fieldAge, fmt.Sprintf("%d", f.age))))
	rows = append(rows, row(fieldLevel, "Level", f.spinner(fieldLevel, scenario.AllDifficulties()[f.level].DisplayName())))
	rows = append(rows, row(fieldThemes, "Themes", f.renderThemes(cw-9)))
	rows = append(rows, row(fieldAvatar, "Avatar", f.spinner(fieldAvatar, profile.Avatars[f.avatar])))

	saveLabel := "SAVE"
	if !f.editing {
		saveLabel = "LET'S GO"
	}
	rows = append(rows, lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		components.ArcadeButton("💾", saveLabel, f.focus == fieldSave, 18)))

	if f.errMsg != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(f.errMsg))
	}

	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (f *Form) spinner(fl field, value string) string {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if f.focus == fl {
		return style.Foreground(theme.ArcadeYellow).Bold(true).Render("◂ " + value + " ▸")
	}
	return style.Render("  " + value)
}

func (f *Form) renderThemes(width int) string {
	var chips []string
	for i, t := range scenario.AllThemes() {
		mark := "[ ]"
		if f.themes[t] {
			mark = "[x]"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if f.themes[t] {
			style = style.Foreground(theme.Success)
		}
		if f.focus == fieldThemes && i == f.themeCursor {
			style = style.Bold(true).Underline(true).Foreground(theme.ArcadeYellow)
		}
		chips = append(chips, style.Render(mark+" "+t.Icon()+" "+t.DisplayName()))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(chips[:3], "  ") + "\n" + strings.Join(chips[3:], "  "))
}
