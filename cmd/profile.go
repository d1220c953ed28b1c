package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/talkbuddy/internal/profile"
	"github.com/abhisek/talkbuddy/internal/scenario"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create or show the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		p, err := profile.Load(cmd.Context(), env.kv)
		if errors.Is(err, profile.ErrNoProfile) {
			fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Create one with: talkbuddy profile create --name <name>")
			return nil
		}
		if err != nil {
			return err
		}

		themes := make([]string, len(p.PreferredThemes))
		for i, t := range p.PreferredThemes {
			themes[i] = t.Icon() + " " + t.DisplayName()
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", p.Avatar, p.Name)
		fmt.Fprintf(out, "Age:    %d\n", p.Age)
		fmt.Fprintf(out, "Level:  %s\n", p.LearningLevel.DisplayName())
		fmt.Fprintf(out, "Themes: %s\n", strings.Join(themes, ", "))
		return nil
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or replace the learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetInt("age")
		level, _ := cmd.Flags().GetString("level")
		themeNames, _ := cmd.Flags().GetStringSlice("themes")
		avatar, _ := cmd.Flags().GetString("avatar")

		p := profile.Profile{
			Name:          name,
			Age:           age,
			LearningLevel: scenario.Difficulty(level),
			Avatar:        avatar,
		}
		for _, t := range themeNames {
			p.PreferredThemes = append(p.PreferredThemes, scenario.Theme(strings.TrimSpace(t)))
		}

		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := profile.Save(cmd.Context(), env.kv, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s %s\n", p.Avatar, p.Name)
		return nil
	},
}

func init() {
	profileCreateCmd.Flags().String("name", "", "Learner name (required)")
	profileCreateCmd.Flags().Int("age", 8, fmt.Sprintf("Age (%d-%d)", profile.MinAge, profile.MaxAge))
	profileCreateCmd.Flags().String("level", string(scenario.Beginner), "Learning level (beginner, intermediate, advanced)")
	profileCreateCmd.Flags().StringSlice("themes", []string{string(scenario.ThemeFriends)}, "Preferred themes, comma separated")
	profileCreateCmd.Flags().String("avatar", profile.Avatars[0], "Avatar emoji")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileCreateCmd)
}
