package scenarios

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/router"
	"github.com/abhisek/talkbuddy/internal/scenario"
	"github.com/abhisek/talkbuddy/internal/screen"
	"github.com/abhisek/talkbuddy/internal/ui/components"
	"github.com/abhisek/talkbuddy/internal/ui/layout"
	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// StartFunc builds the screen that plays sc.
type StartFunc func(sc scenario.Scenario) (screen.Screen, error)

type rowKind int

const (
	rowThemeHeader rowKind = iota
	rowScenario
)

type row struct {
	kind     rowKind
	theme    scenario.Theme
	scenario *scenario.Scenario
}

// ScenariosScreen lists the scenarios that suit the learner, grouped by theme.
type ScenariosScreen struct {
	catalog *scenario.Catalog
	base    scenario.Filter
	start   StartFunc

	themes    []scenario.Theme
	themeIdx  int
	showAll   bool
	search    components.TextInput
	searching bool

	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*ScenariosScreen)(nil)
var _ screen.KeyHintProvider = (*ScenariosScreen)(nil)
var _ screen.InputCapturer = (*ScenariosScreen)(nil)

// New creates a ScenariosScreen. base carries the learner's level and
// preferred themes.
func New(catalog *scenario.Catalog, base scenario.Filter, start StartFunc) *ScenariosScreen {
	search := components.NewTextInput("Search scenarios...", 40)
	search.Blur()

	s := &ScenariosScreen{
		catalog: catalog,
		base:    base,
		start:   start,
		themes:  append([]scenario.Theme{scenario.ThemeAll}, catalog.Themes()...),
		search:  search,
	}
	s.rebuild()
	return s
}

func (s *ScenariosScreen) Init() tea.Cmd {
	return nil
}

func (s *ScenariosScreen) Title() string {
	return "Pick a Scenario"
}

// CapturingInput reports whether the search box has focus.
func (s *ScenariosScreen) CapturingInput() bool {
	return s.searching
}

// KeyHints returns the key binding hints for the footer.
func (s *ScenariosScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter/Esc", Description: "Done"},
		}
	}
	levels := "All levels"
	if s.showAll {
		levels = "My level"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "/", Description: "Search"},
		{Key: "T", Description: "Theme"},
		{Key: "A", Description: levels},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScenariosScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.searching {
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.searching {
		switch kmsg.String() {
		case "enter", "esc", "tab":
			s.searching = false
			s.search.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.rebuild()
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "tab":
		s.nextTheme()
	case "shift+tab":
		s.prevTheme()
	case "/":
		s.searching = true
		return s, s.search.Focus()
	case "t":
		s.themeIdx = (s.themeIdx + 1) % len(s.themes)
		s.rebuild()
	case "a":
		s.showAll = !s.showAll
		s.rebuild()
	case "enter":
		return s, s.selectScenario()
	}
	return s, nil
}

// Filter returns the filter currently applied to the catalog.
func (s *ScenariosScreen) Filter() scenario.Filter {
	f := s.base
	f.Search = s.search.Value()
	f.Theme = s.themes[s.themeIdx]
	if s.showAll {
		f.Level = ""
		f.PreferredThemes = nil
	}
	return f
}

// rebuild recomputes the rows from the catalog, keeping the cursor on a
// scenario row.
func (s *ScenariosScreen) rebuild() {
	list := s.catalog.Filter(s.Filter())

	var rows []row
	for _, th := range scenario.AllThemes() {
		header := false
		for i := range list {
			if list[i].Theme != th {
				continue
			}
			if !header {
				rows = append(rows, row{kind: rowThemeHeader, theme: th})
				header = true
			}
			rows = append(rows, row{kind: rowScenario, theme: th, scenario: &list[i]})
		}
	}

	s.rows = rows
	s.cursor = 0
	s.scrollOffset = 0
	for i, r := range s.rows {
		if r.kind == rowScenario {
			s.cursor = i
			break
		}
	}
}

// Selected returns the scenario under the cursor.
func (s *ScenariosScreen) Selected() (scenario.Scenario, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowScenario {
		return scenario.Scenario{}, false
	}
	return *s.rows[s.cursor].scenario, true
}

func (s *ScenariosScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderFilterBar(width))
	b.WriteString("\n")

	listHeight := height - lipgloss.Height(b.String()) - 1
	if len(s.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo scenarios match. Press A to see every level."))
		return b.String()
	}

	s.adjustScroll(listHeight)

	var lines []string
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= listHeight {
			break
		}
		switch r.kind {
		case rowThemeHeader:
			lines = append(lines, renderThemeHeader(r.theme, width))
		case rowScenario:
			lines = append(lines, renderScenarioRow(r, i == s.cursor, width))
		}
		visible++
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (s *ScenariosScreen) renderFilterBar(width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	th := s.themes[s.themeIdx]
	themeLabel := "All themes"
	if th != scenario.ThemeAll {
		themeLabel = th.Icon() + " " + th.DisplayName()
	}
	levelLabel := "My level"
	if s.showAll {
		levelLabel = "All levels"
	}

	bar := dim.Render("  Theme: ") + val.Render(themeLabel) +
		dim.Render("    Showing: ") + val.Render(levelLabel)

	if s.searching || s.search.Value() != "" {
		bar += "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(s.search.View())
	}
	return bar
}

// moveCursor moves the cursor by delta, skipping theme headers.
func (s *ScenariosScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowScenario {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextTheme jumps the cursor to the first scenario of the next theme group.
func (s *ScenariosScreen) nextTheme() {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].theme
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowScenario && s.rows[i].theme != current {
			s.cursor = i
			return
		}
	}
}

// prevTheme jumps the cursor to the first scenario of the previous theme group.
func (s *ScenariosScreen) prevTheme() {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].theme

	prevStart := -1
	var prev scenario.Theme
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowScenario && s.rows[i].theme != current {
			prev = s.rows[i].theme
			prevStart = i
			break
		}
	}
	if prevStart < 0 {
		return
	}

	for i := prevStart; i >= 0; i-- {
		if s.rows[i].kind != rowScenario || s.rows[i].theme != prev {
			s.cursor = i + 1
			return
		}
	}
	s.cursor = 0
	if s.rows[0].kind != rowScenario {
		s.moveCursor(1)
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *ScenariosScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowThemeHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// selectScenario opens the detail card for the scenario under the cursor.
func (s *ScenariosScreen) selectScenario() tea.Cmd {
	sc, ok := s.Selected()
	if !ok {
		return nil
	}
	detail := newDetail(sc, s.start)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func renderThemeHeader(th scenario.Theme, width int) string {
	name := strings.ToUpper(th.DisplayName())
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(th.Icon() + " " + name)
}

func renderScenarioRow(r row, selected bool, width int) string {
	sc := r.scenario
	if sc == nil {
		return ""
	}

	padding := 4
	emojiWidth := 3
	levelWidth := 14
	spacing := 4
	titleWidth := width - padding - emojiWidth - levelWidth - spacing
	if titleWidth < 10 {
		titleWidth = 10
	}

	title := sc.Title
	if len([]rune(title)) > titleWidth {
		title = string([]rune(title)[:titleWidth-1]) + "…"
	}

	titleStyle := lipgloss.NewStyle().Foreground(theme.Text)
	levelStyle := lipgloss.NewStyle().Foreground(difficultyColor(sc.Difficulty))
	cursor := "  "
	if selected {
		titleStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s",
		cursor,
		sc.Emoji,
		titleStyle.Render(fmt.Sprintf("%-*s", titleWidth, title)),
		levelStyle.Render(fmt.Sprintf("%12s", sc.Difficulty.DisplayName())),
	)
}

func difficultyColor(d scenario.Difficulty) color.Color {
	switch d {
	case scenario.Beginner:
		return theme.Success
	case scenario.Intermediate:
		return theme.ArcadeYellow
	case scenario.Advanced:
		return theme.Accent
	default:
		return theme.TextDim
	}
}
