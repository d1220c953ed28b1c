package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stars, level and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		agg := env.progress.Load(cmd.Context())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Stars:          %d\n", agg.Stars)
		fmt.Fprintf(out, "Level:          %d (%d stars to level %d)\n", agg.Level, agg.StarsToNextLevel(), agg.Level+1)
		fmt.Fprintf(out, "Next level:     %d%%\n", int(agg.LevelProgress()*100))
		fmt.Fprintf(out, "Scenarios done: %d\n", agg.CompletedScenarios)
		fmt.Fprintf(out, "Success rate:   %d%%\n", agg.CompletionRate())
		if agg.StreakDays > 0 {
			fmt.Fprintf(out, "Streak:         %d days\n", agg.StreakDays)
		}

		if len(agg.Badges) == 0 {
			fmt.Fprintln(out, "Badges:         none yet")
			return nil
		}
		fmt.Fprintln(out, "Badges:")
		for _, b := range agg.Badges {
			fmt.Fprintf(out, "  %s %s\n", b.Icon(), b)
		}
		return nil
	},
}
