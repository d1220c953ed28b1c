// Package evaluator scores free-text replies with a deterministic heuristic.
package evaluator

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/talkbuddy/internal/scenario"
)

// Category classifies a free-text reply.
type Category string

const (
	Good Category = "good"
	Weak Category = "weak"
)

const (
	// MinLength is the trimmed rune count a good reply must exceed.
	MinLength = 10

	GoodStars = 3
	WeakStars = 1

	GoodFeedback = "Great response! You used polite words and showed understanding. Well done! ⭐"
	WeakFeedback = "Good try! Next time, try to be more polite or show how you understand the other person's feelings. 💙"
)

// Markers are the courtesy and empathy phrases a good reply must contain.
var Markers = []string{"please", "thank you", "sorry", "feel"}

// Result is the outcome of evaluating one reply.
type Result struct {
	Category Category
	Stars    int
	Feedback string
	Emotion  scenario.Emotion
}

// Evaluate scores text. It is pure: the same input always yields the same Result.
func Evaluate(text string) Result {
	if IsGood(text) {
		return Result{Category: Good, Stars: GoodStars, Feedback: GoodFeedback, Emotion: scenario.EmotionHappy}
	}
	return Result{Category: Weak, Stars: WeakStars, Feedback: WeakFeedback, Emotion: scenario.EmotionEncouraging}
}

// IsGood reports whether text is long enough and contains a marker phrase.
func IsGood(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) <= MinLength {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, m := range Markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
