package progress

import (
	"fmt"
	"strings"
)

// Badge is an achievement label. Once unlocked it is never removed.
type Badge string

const (
	BadgeFirstSteps    Badge = "First Steps"
	BadgeSocialStar    Badge = "Social Star"
	BadgeStarCollector Badge = "Star Collector"
)

// LevelBadge returns the badge for reaching level n.
func LevelBadge(n int) Badge {
	return Badge(fmt.Sprintf("Level %d", n))
}

// IsLevel reports whether b was awarded for reaching a level.
func (b Badge) IsLevel() bool {
	return strings.HasPrefix(string(b), "Level ")
}

var badgeIcons = map[Badge]string{
	"Level 2":          "🌟",
	"Level 3":          "⭐",
	"Level 4":          "🌠",
	"Level 5":          "✨",
	BadgeFirstSteps:    "👣",
	BadgeSocialStar:    "🌟",
	BadgeStarCollector: "🎯",
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	if icon, ok := badgeIcons[b]; ok {
		return icon
	}
	return "🏆"
}

// Rule unlocks Badge when Unlocks holds for an update from before to after.
type Rule struct {
	Badge   Badge
	Hint    string
	Unlocks func(before, after Aggregate) bool
}

// Rules returns the milestone badge rules in evaluation order.
func Rules() []Rule {
	return []Rule{
		{Badge: BadgeFirstSteps, Hint: "Finish 5 scenarios", Unlocks: completedReached(5)},
		{Badge: BadgeSocialStar, Hint: "Finish 20 scenarios", Unlocks: completedReached(20)},
		{Badge: BadgeStarCollector, Hint: "Collect 50 stars", Unlocks: func(_, after Aggregate) bool { return after.Stars >= 50 }},
	}
}

// completedReached fires on the update that first brings the completed count to n.
func completedReached(n int) func(before, after Aggregate) bool {
	return func(before, after Aggregate) bool {
		return before.CompletedScenarios < n && after.CompletedScenarios >= n
	}
}
