package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talkbuddy/internal/profile"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Delete stars, badges and history. With --all the learner profile is deleted too.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		if err := env.progress.Reset(ctx); err != nil {
			return err
		}
		env.logger.Info("progress reset", "all", all)
		if !all {
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		}
		if err := profile.Delete(ctx, env.kv); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress and profile reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also delete the learner profile")
}
