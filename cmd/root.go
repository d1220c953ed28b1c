package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talkbuddy/internal/config"
	"github.com/abhisek/talkbuddy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "talkbuddy",
	Short: "Practice everyday conversations",
	Long:  "TalkBuddy: a terminal app where children practice social skills through short guided conversations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TALKBUDDY_DB env var)")
	rootCmd.PersistentFlags().String("store", "", "Storage backend: sqlite, redis or memory (overrides TALKBUDDY_STORE)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies --store and --db, which
// take priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if s, _ := cmd.Flags().GetString("store"); s != "" {
		switch store.Backend(s) {
		case store.BackendSQLite, store.BackendRedis, store.BackendMemory:
			cfg.Store = s
		default:
			return config.Config{}, fmt.Errorf("--store: unknown backend %q (want sqlite, redis or memory)", s)
		}
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	return cfg, nil
}

// openKV opens the configured store.
func openKV(cmd *cobra.Command, cfg config.Config) (store.KV, error) {
	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	kv, err := store.OpenKV(cmd.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return kv, nil
}
