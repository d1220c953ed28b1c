package scenario

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Theme groups scenarios by social setting.
type Theme string

const (
	ThemeSchool     Theme = "school"
	ThemeFriends    Theme = "friends"
	ThemeFamily     Theme = "family"
	ThemeEmotions   Theme = "emotions"
	ThemePlayground Theme = "playground"
	ThemeShopping   Theme = "shopping"
)

// AllThemes returns every known theme in display order.
func AllThemes() []Theme {
	return []Theme{ThemeSchool, ThemeFriends, ThemeFamily, ThemeEmotions, ThemePlayground, ThemeShopping}
}

var titleCaser = cases.Title(language.English)

// DisplayName returns a human-readable label for the theme.
func (t Theme) DisplayName() string {
	return titleCaser.String(string(t))
}

// Icon returns the display icon for the theme.
func (t Theme) Icon() string {
	switch t {
	case ThemeSchool:
		return "🏫"
	case ThemeFriends:
		return "👫"
	case ThemeFamily:
		return "🏠"
	case ThemeEmotions:
		return "😊"
	case ThemePlayground:
		return "🛝"
	case ThemeShopping:
		return "🛒"
	default:
		return "✦"
	}
}

// Difficulty is a scenario's tier. It doubles as the learner's level.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// AllDifficulties returns the tiers from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for the tier.
func (d Difficulty) DisplayName() string {
	return titleCaser.String(string(d))
}

// Emotion tags a dialogue line with the speaker's mood.
type Emotion string

const (
	EmotionNone        Emotion = ""
	EmotionHappy       Emotion = "happy"
	EmotionSad         Emotion = "sad"
	EmotionConfused    Emotion = "confused"
	EmotionExcited     Emotion = "excited"
	EmotionGentle      Emotion = "gentle"
	EmotionEncouraging Emotion = "encouraging"
)

// Icon returns the display icon for the emotion, or "" when untagged.
func (e Emotion) Icon() string {
	switch e {
	case EmotionHappy:
		return "😊"
	case EmotionSad:
		return "😢"
	case EmotionConfused:
		return "😕"
	case EmotionExcited:
		return "🎉"
	case EmotionGentle:
		return "💙"
	case EmotionEncouraging:
		return "👍"
	default:
		return ""
	}
}
