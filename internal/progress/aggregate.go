// Package progress keeps the learner's lifetime stars, level and badges.
package progress

import "slices"

// StarsPerLevel is the number of lifetime stars between consecutive levels.
const StarsPerLevel = 10

// Aggregate is the learner's cumulative progress record.
type Aggregate struct {
	TotalScenarios     int     `json:"total_scenarios"`
	CompletedScenarios int     `json:"completed_scenarios"`
	Stars              int     `json:"stars"`
	Badges             []Badge `json:"badges"`
	Level              int     `json:"level"`
	StreakDays         int     `json:"streak_days"` // carried through unchanged
}

// New returns the aggregate for a learner who has not played yet.
func New() Aggregate {
	return Aggregate{Badges: []Badge{}, Level: 1}
}

// LevelFor derives the level from lifetime stars.
func LevelFor(stars int) int {
	if stars < 0 {
		stars = 0
	}
	return stars/StarsPerLevel + 1
}

// HasBadge reports whether b has been unlocked.
func (a Aggregate) HasBadge(b Badge) bool {
	return slices.Contains(a.Badges, b)
}

// Normalize recomputes derived fields so a stored aggregate cannot drift.
func (a Aggregate) Normalize() Aggregate {
	if a.Stars < 0 {
		a.Stars = 0
	}
	a.Level = LevelFor(a.Stars)
	if a.Badges == nil {
		a.Badges = []Badge{}
	}
	return a
}

// Apply records one completed scenario worth starsEarned stars.
// It returns the updated aggregate and the badges unlocked by this update,
// in unlock order. agg is not modified. Negative stars count as zero.
func Apply(agg Aggregate, starsEarned int) (Aggregate, []Badge) {
	if starsEarned < 0 {
		starsEarned = 0
	}

	before := agg.Normalize()
	after := before
	after.Badges = slices.Clone(before.Badges)
	after.TotalScenarios++
	after.CompletedScenarios++
	after.Stars += starsEarned
	after.Level = LevelFor(after.Stars)

	var unlocked []Badge
	award := func(b Badge) {
		if !after.HasBadge(b) {
			after.Badges = append(after.Badges, b)
			unlocked = append(unlocked, b)
		}
	}

	if after.Level > before.Level {
		award(LevelBadge(after.Level))
	}
	for _, r := range Rules() {
		if r.Unlocks(before, after) {
			award(r.Badge)
		}
	}
	return after, unlocked
}
