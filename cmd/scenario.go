package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/talkbuddy/internal/evaluator"
	"github.com/abhisek/talkbuddy/internal/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Browse the built-in scenarios",
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios (optionally filtered by theme, level or search text)",
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, _ := cmd.Flags().GetString("theme")
		level, _ := cmd.Flags().GetString("level")
		search, _ := cmd.Flags().GetString("search")

		catalog, err := scenario.Builtin()
		if err != nil {
			return fmt.Errorf("load scenarios: %w", err)
		}

		f := scenario.Filter{Search: search, Theme: scenario.Theme(theme)}
		if level != "" {
			f.Level = scenario.Difficulty(level)
			if !f.Level.Valid() {
				return fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", level)
			}
		}
		scenarios := catalog.Filter(f)
		if len(scenarios) == 0 {
			return fmt.Errorf("no scenarios match")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-28s  %-36s  %-12s  %-12s  %s\n",
			"ID", "Title", "Theme", "Level", "Steps")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, sc := range scenarios {
			title := sc.Title
			if len(title) > 36 {
				title = title[:33] + "..."
			}
			fmt.Fprintf(out, "%-28s  %-36s  %-12s  %-12s  %5d\n",
				sc.ID, title, sc.Theme.DisplayName(), sc.Difficulty.DisplayName(), len(sc.Steps))
		}

		fmt.Fprintf(out, "\n%d scenarios\n", len(scenarios))
		return nil
	},
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show <scenario-id>",
	Short: "Show a scenario's steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := scenario.Builtin()
		if err != nil {
			return fmt.Errorf("load scenarios: %w", err)
		}
		sc, err := catalog.Get(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", sc.Emoji, sc.Title)
		fmt.Fprintf(out, "%s · %s\n\n", sc.Theme.DisplayName(), sc.Difficulty.DisplayName())
		if sc.Description != "" {
			fmt.Fprintf(out, "%s\n\n", sc.Description)
		}
		fmt.Fprintf(out, "Situation: %s\n\n", sc.Situation)

		for i, step := range sc.Steps {
			fmt.Fprintf(out, "%d. %s\n", i+1, step.StepContent())
			switch st := step.(type) {
			case *scenario.ChoiceStep:
				for j, o := range st.Options {
					mark := " "
					if o.Correct {
						mark = "✓"
					}
					fmt.Fprintf(out, "   %s %c) %s\n", mark, 'A'+j, o.Text)
				}
			case *scenario.InputStep:
				if st.Hint != "" {
					fmt.Fprintf(out, "   hint: %s\n", st.Hint)
				}
			}
		}
		fmt.Fprintf(out, "\nUp to %d stars\n", sc.MaxStars(evaluator.GoodStars))
		return nil
	},
}

func init() {
	scenarioListCmd.Flags().String("theme", "", "Filter by theme (school, friends, family, emotions, playground, shopping)")
	scenarioListCmd.Flags().String("level", "", "Filter by level (beginner, intermediate, advanced)")
	scenarioListCmd.Flags().String("search", "", "Match title or description")

	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
}
