package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talkbuddy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: badge earned today
	MascotWaving                           // Cyan, waving: nothing played yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ◡  │
│ ... │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ♪ ♪ │
└─╥═╥─┘
  ╚═╝`

const mascotWaving = `┌─────┐  
│ ◉ ◉ │ /
│  ◡  │/
│ hi! │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotWaving:
		art = mascotWaving
		fg = theme.ArcadeCyan
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
