package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// MenuItem is one choice in a Menu. Icon is shown before the label so
// early readers can find an item by picture.
type MenuItem struct {
	Icon     string
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Text is the label with its icon.
func (it MenuItem) Text() string {
	if it.Icon == "" {
		return it.Label
	}
	return it.Icon + " " + it.Label
}

// Menu is a vertical menu. Arrows wrap around and the digits 1-9 pick an
// item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if i := m.step(-1, 1); i >= 0 {
		m.Selected = i
	}
	return m
}

// step returns the next enabled index after from in direction dir, or -1.
func (m Menu) step(from, dir int) int {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		i := ((from+dir*k)%n + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter", "space", " ":
		return m, m.activate()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate()
			}
		}
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	item := m.Items[m.Selected]
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}

// View renders the menu as a plain list.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case i == m.Selected:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
				Render("  ▸ " + item.Text()))
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("    " + item.Text()))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
				Render("    " + item.Text()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
