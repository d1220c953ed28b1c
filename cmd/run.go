package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/talkbuddy/internal/app"
	"github.com/abhisek/talkbuddy/internal/config"
	"github.com/abhisek/talkbuddy/internal/progress"
	"github.com/abhisek/talkbuddy/internal/scenario"
	sessionscreen "github.com/abhisek/talkbuddy/internal/screens/session"
	"github.com/abhisek/talkbuddy/internal/store"
)

// runtimeEnv bundles what every command that touches learner data needs.
type runtimeEnv struct {
	cfg      config.Config
	logger   *slog.Logger
	kv       store.KV
	catalog  *scenario.Catalog
	progress *progress.Service
	closers  []func() error
}

func (e *runtimeEnv) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	return errors.Join(errs...)
}

// setup loads config, the logger, the store and the catalog. The full-screen
// UI owns the terminal, so it logs to a file unless one is configured.
func setup(cmd *cobra.Command, fullScreen bool) (*runtimeEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var fallback string
	if fullScreen {
		if fallback, err = config.DefaultLogPath(); err != nil {
			return nil, err
		}
	}
	logger, closeLog, err := cfg.NewLogger(fallback)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	env := &runtimeEnv{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	catalog, err := scenario.Builtin()
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	env.catalog = catalog

	kv, err := openKV(cmd, cfg)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.kv = kv
	env.closers = append(env.closers, kv.Close)
	env.progress = progress.NewService(kv, logger)

	logger.Debug("environment ready", "store", cfg.Store, "scenarios", catalog.Len(), "catalog_version", catalog.Version())
	return env, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	return app.Run(app.Options{
		Catalog:  env.catalog,
		Progress: env.progress,
		KV:       env.kv,
		Session: sessionscreen.Config{
			Delays:      env.cfg.Delays(),
			PromptDwell: env.cfg.PromptDwell,
			Logger:      env.logger,
		},
		Logger: env.logger,
	})
}
