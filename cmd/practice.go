package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talkbuddy/internal/practice"
	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/scenario"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <scenario-id>",
	Short: "Play a scenario as a plain text conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		instant, _ := cmd.Flags().GetBool("instant")

		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		sc, err := env.catalog.Get(args[0])
		if errors.Is(err, scenario.ErrNotFound) {
			return fmt.Errorf("no scenario %q (see talkbuddy scenario list)", args[0])
		}
		if err != nil {
			return err
		}

		learner, err := profile.Load(cmd.Context(), env.kv)
		if err != nil && !errors.Is(err, profile.ErrNoProfile) {
			env.logger.Warn("stored profile unusable", "error", err)
		}

		_, err = practice.Run(cmd.Context(), sc, practice.Options{
			In:       cmd.InOrStdin(),
			Out:      cmd.OutOrStdout(),
			Learner:  learner,
			Recorder: env.progress,
			Delays:   env.cfg.Delays(),
			Instant:  instant,
			Logger:   env.logger,
		})
		return err
	},
}

func init() {
	practiceCmd.Flags().Bool("instant", false, "Reply without pauses")
}
