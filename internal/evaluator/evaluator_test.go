package evaluator

import (
	"testing"

	"github.com/abhisek/talkbuddy/internal/scenario"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
	}{
		{"thank you", "thank you so much for your help", Good},
		{"please", "Could you please help me?", Good},
		{"sorry uppercase", "I am SORRY about the book", Good},
		{"feel inside word", "How are you feeling today?", Good},
		{"marker but too short", "sorry!", Weak},
		{"exactly ten runes", "  please!!!!  ", Weak},
		{"eleven runes", "please help", Good},
		{"long without marker", "I want to play football with you", Weak},
		{"empty", "", Weak},
		{"whitespace", "     ", Weak},
		{"multibyte length", "feel ❤❤❤❤❤❤", Good},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.input)
			if got.Category != tt.want {
				t.Errorf("Evaluate(%q).Category = %q, want %q", tt.input, got.Category, tt.want)
			}
		})
	}
}

func TestEvaluate_Results(t *testing.T) {
	good := Evaluate("thank you so much for your help")
	if good.Stars != 3 {
		t.Errorf("good Stars = %d, want 3", good.Stars)
	}
	if good.Emotion != scenario.EmotionHappy {
		t.Errorf("good Emotion = %q, want happy", good.Emotion)
	}
	if good.Feedback != GoodFeedback {
		t.Errorf("good Feedback = %q", good.Feedback)
	}

	weak := Evaluate("ok")
	if weak.Stars != 1 {
		t.Errorf("weak Stars = %d, want 1", weak.Stars)
	}
	if weak.Emotion != scenario.EmotionEncouraging {
		t.Errorf("weak Emotion = %q, want encouraging", weak.Emotion)
	}
	if weak.Feedback != WeakFeedback {
		t.Errorf("weak Feedback = %q", weak.Feedback)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := "I feel sad when you take my toys"
	first := Evaluate(in)
	for range 10 {
		if got := Evaluate(in); got != first {
			t.Fatalf("Evaluate() = %+v, want %+v", got, first)
		}
	}
}
