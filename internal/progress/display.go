package progress

import "fmt"

// StarsToNextLevel returns how many more stars are needed for the next level.
func (a Aggregate) StarsToNextLevel() int {
	return LevelFor(a.Stars)*StarsPerLevel - a.Stars
}

// LevelProgress returns the fraction of the current level completed, in [0, 1).
func (a Aggregate) LevelProgress() float64 {
	if a.Stars <= 0 {
		return 0
	}
	return float64(a.Stars%StarsPerLevel) / StarsPerLevel
}

// CompletionRate returns completed scenarios as a rounded percentage of
// attempted ones, or 0 before the first attempt.
func (a Aggregate) CompletionRate() int {
	if a.TotalScenarios <= 0 {
		return 0
	}
	return (a.CompletedScenarios*100 + a.TotalScenarios/2) / a.TotalScenarios
}

// Goal is a badge the learner has not earned yet.
type Goal struct {
	Badge Badge
	Hint  string
}

// Goals lists the next level badge followed by every milestone badge not yet held.
func (a Aggregate) Goals() []Goal {
	next := LevelFor(a.Stars) + 1
	goals := []Goal{{
		Badge: LevelBadge(next),
		Hint:  fmt.Sprintf("Collect %d more stars", a.StarsToNextLevel()),
	}}
	for _, r := range Rules() {
		if !a.HasBadge(r.Badge) {
			goals = append(goals, Goal{Badge: r.Badge, Hint: r.Hint})
		}
	}
	return goals
}
