package scenario

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func mustBuiltin(t *testing.T) *Catalog {
	t.Helper()
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	return c
}

func TestBuiltin_Loads(t *testing.T) {
	c := mustBuiltin(t)
	if c.Len() != 6 {
		t.Errorf("Len() = %d, want 6", c.Len())
	}
	if c.Version() != "v1.0.0" {
		t.Errorf("Version() = %q, want v1.0.0", c.Version())
	}
}

func TestBuiltin_StepTypes(t *testing.T) {
	c := mustBuiltin(t)
	sc, err := c.Get("meeting-new-friend")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(sc.Steps) != 4 {
		t.Fatalf("len(Steps) = %d, want 4", len(sc.Steps))
	}

	if _, ok := sc.Steps[0].(*PromptStep); !ok {
		t.Errorf("Steps[0] = %T, want *PromptStep", sc.Steps[0])
	}
	if sc.Steps[0].StepEmotion() != EmotionEncouraging {
		t.Errorf("Steps[0] emotion = %q, want encouraging", sc.Steps[0].StepEmotion())
	}

	choice, ok := sc.Steps[1].(*ChoiceStep)
	if !ok {
		t.Fatalf("Steps[1] = %T, want *ChoiceStep", sc.Steps[1])
	}
	opt, ok := choice.Option("polite")
	if !ok {
		t.Fatal("Option(polite) not found")
	}
	if !opt.Correct || opt.Stars != 3 {
		t.Errorf("polite option = %+v, want correct with 3 stars", opt)
	}
	if _, ok := choice.Option("nope"); ok {
		t.Error("Option(nope) should not be found")
	}

	input, ok := sc.Steps[2].(*InputStep)
	if !ok {
		t.Fatalf("Steps[2] = %T, want *InputStep", sc.Steps[2])
	}
	if input.Hint == "" {
		t.Error("input step should carry a hint")
	}
}

func TestGet_NotFound(t *testing.T) {
	c := mustBuiltin(t)
	_, err := c.Get("no-such-scenario")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := mustBuiltin(t)
	all := c.All()
	all[0].Title = "changed"
	if c.All()[0].Title == "changed" {
		t.Error("All() should return a copy")
	}
}

func TestThemes(t *testing.T) {
	c := mustBuiltin(t)
	got := c.Themes()
	want := []Theme{ThemeSchool, ThemeFriends, ThemeFamily, ThemeEmotions, ThemePlayground}
	if len(got) != len(want) {
		t.Fatalf("Themes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Themes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilter(t *testing.T) {
	c := mustBuiltin(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "empty filter matches all",
			filter: Filter{},
			want:   []string{"meeting-new-friend", "classroom-conflict", "sharing-feelings", "playground-inclusion", "asking-for-help", "family-chores"},
		},
		{
			name:   "beginner level",
			filter: Filter{Level: Beginner},
			want:   []string{"meeting-new-friend", "sharing-feelings", "asking-for-help", "family-chores"},
		},
		{
			name:   "advanced sees everything",
			filter: Filter{Level: Advanced, Theme: ThemeAll},
			want:   []string{"meeting-new-friend", "classroom-conflict", "sharing-feelings", "playground-inclusion", "asking-for-help", "family-chores"},
		},
		{
			name:   "preferred theme bypasses level",
			filter: Filter{Level: Beginner, PreferredThemes: []Theme{ThemePlayground}},
			want:   []string{"meeting-new-friend", "sharing-feelings", "playground-inclusion", "asking-for-help", "family-chores"},
		},
		{
			name:   "theme",
			filter: Filter{Theme: ThemeSchool},
			want:   []string{"classroom-conflict", "asking-for-help"},
		},
		{
			name:   "theme and level",
			filter: Filter{Theme: ThemeSchool, Level: Beginner},
			want:   []string{"asking-for-help"},
		},
		{
			name:   "search title and description case-insensitively",
			filter: Filter{Search: "  FEEL "},
			want:   []string{"sharing-feelings", "playground-inclusion"},
		},
		{
			name:   "no match",
			filter: Filter{Search: "spaceship"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.filter)
			var ids []string
			for _, sc := range got {
				ids = append(ids, sc.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Filter() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestLoad_RejectsSchemaViolation(t *testing.T) {
	doc := `{"version":"v1.0.0","scenarios":[{"id":"x","title":"X","theme":"space","difficulty":"beginner","situation":"s","steps":[{"id":"a","type":"prompt","content":"hi"}]}]}`
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatal("expected schema error for unknown theme")
	}
}

func TestLoad_RejectsChoiceWithoutOptions(t *testing.T) {
	doc := `{"version":"v1.0.0","scenarios":[{"id":"x","title":"X","theme":"school","difficulty":"beginner","situation":"s","steps":[{"id":"a","type":"choice","content":"pick"}]}]}`
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatal("expected schema error for choice step without options")
	}
}

func TestLoad_RejectsUnsupportedMajor(t *testing.T) {
	doc := `{"version":"v2.0.0","scenarios":[{"id":"x","title":"X","theme":"school","difficulty":"beginner","situation":"s","steps":[{"id":"a","type":"prompt","content":"hi"}]}]}`
	_, err := Load([]byte(doc))
	if err == nil {
		t.Fatal("expected error for v2 catalog")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("error should mention unsupported, got: %v", err)
	}
}

func TestValidateScenarios_DetectsDuplicateID(t *testing.T) {
	scenarios := []Scenario{
		{ID: "a", Difficulty: Beginner, Steps: []Step{&PromptStep{ID: "p", Content: "hi"}}},
		{ID: "a", Difficulty: Beginner, Steps: []Step{&PromptStep{ID: "p", Content: "hi"}}},
	}
	err := validateScenarios(scenarios)
	if err == nil {
		t.Fatal("expected error for duplicate ID, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidateScenarios_RequiresCorrectOption(t *testing.T) {
	scenarios := []Scenario{{
		ID:         "a",
		Difficulty: Beginner,
		Steps: []Step{&ChoiceStep{ID: "c", Content: "pick", Options: []Option{
			{ID: "x", Text: "x"},
			{ID: "y", Text: "y"},
		}}},
	}}
	err := validateScenarios(scenarios)
	if err == nil {
		t.Fatal("expected error for missing correct option, got nil")
	}
	if !strings.Contains(err.Error(), "no correct option") {
		t.Errorf("error should mention the missing correct option, got: %v", err)
	}
}

func TestValidateScenarios_DetectsEmptyScenario(t *testing.T) {
	err := validateScenarios([]Scenario{{ID: "a", Difficulty: Beginner}})
	if err == nil || !strings.Contains(err.Error(), "no steps") {
		t.Errorf("validateScenarios() = %v, want no steps error", err)
	}
}

func TestScenarioJSON_PreservesStepKinds(t *testing.T) {
	c := mustBuiltin(t)
	sc, _ := c.Get("classroom-conflict")

	data, err := json.Marshal(sc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var back Scenario
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(back.Steps) != len(sc.Steps) {
		t.Fatalf("len(Steps) = %d, want %d", len(back.Steps), len(sc.Steps))
	}
	for i := range sc.Steps {
		if back.Steps[i].Kind() != sc.Steps[i].Kind() {
			t.Errorf("Steps[%d].Kind() = %q, want %q", i, back.Steps[i].Kind(), sc.Steps[i].Kind())
		}
	}
}

func TestUnmarshal_UnknownStepType(t *testing.T) {
	var sc Scenario
	err := json.Unmarshal([]byte(`{"id":"x","steps":[{"id":"a","type":"dance","content":"hi"}]}`), &sc)
	if err == nil {
		t.Fatal("expected error for unknown step type")
	}
}

func TestMaxStars(t *testing.T) {
	c := mustBuiltin(t)
	sc, _ := c.Get("meeting-new-friend")
	// two choice steps at 3 each plus one input step
	if got := sc.MaxStars(3); got != 9 {
		t.Errorf("MaxStars(3) = %d, want 9", got)
	}
}

func TestDisplayNames(t *testing.T) {
	if got := ThemePlayground.DisplayName(); got != "Playground" {
		t.Errorf("DisplayName() = %q, want Playground", got)
	}
	if got := Intermediate.DisplayName(); got != "Intermediate" {
		t.Errorf("DisplayName() = %q, want Intermediate", got)
	}
	if EmotionNone.Icon() != "" {
		t.Error("untagged emotion should have no icon")
	}
	if EmotionHappy.Icon() == "" {
		t.Error("happy should have an icon")
	}
}
