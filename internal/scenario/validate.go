package scenario

import (
	"fmt"
	"strings"
)

// validateScenarios performs structural checks the JSON Schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateScenarios(scenarios []Scenario) error {
	var errs []string

	ids := make(map[string]bool, len(scenarios))
	for _, sc := range scenarios {
		if ids[sc.ID] {
			errs = append(errs, fmt.Sprintf("duplicate scenario ID: %q", sc.ID))
		}
		ids[sc.ID] = true

		if len(sc.Steps) == 0 {
			errs = append(errs, fmt.Sprintf("scenario %q has no steps", sc.ID))
		}
		if !sc.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("scenario %q has unknown difficulty %q", sc.ID, sc.Difficulty))
		}

		stepIDs := make(map[string]bool, len(sc.Steps))
		for _, st := range sc.Steps {
			if stepIDs[st.StepID()] {
				errs = append(errs, fmt.Sprintf("scenario %q: duplicate step ID %q", sc.ID, st.StepID()))
			}
			stepIDs[st.StepID()] = true

			switch st := st.(type) {
			case *ChoiceStep:
				errs = append(errs, validateChoice(sc.ID, st)...)
			case *InputStep, *PromptStep:
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateChoice(scenarioID string, st *ChoiceStep) []string {
	var errs []string
	prefix := fmt.Sprintf("scenario %q step %q", scenarioID, st.ID)

	if len(st.Options) == 0 {
		return []string{prefix + ": choice step has no options"}
	}

	optIDs := make(map[string]bool, len(st.Options))
	hasCorrect := false
	for _, o := range st.Options {
		if optIDs[o.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate option ID %q", prefix, o.ID))
		}
		optIDs[o.ID] = true
		if o.Stars < 0 {
			errs = append(errs, fmt.Sprintf("%s option %q: stars must be >= 0, got %d", prefix, o.ID, o.Stars))
		}
		if o.Correct {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		errs = append(errs, prefix+": no correct option")
	}
	return errs
}
