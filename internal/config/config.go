// Package config loads talkbuddy's settings from the environment and builds
// the process logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/store"
)

// Config holds every environment-driven setting.
type Config struct {
	Store string `env:"TALKBUDDY_STORE" envDefault:"sqlite"`
	DB    string `env:"TALKBUDDY_DB"`

	RedisAddr     string `env:"TALKBUDDY_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"TALKBUDDY_REDIS_PASSWORD"`
	RedisDB       int    `env:"TALKBUDDY_REDIS_DB" envDefault:"0"`

	LogLevel  string `env:"TALKBUDDY_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"TALKBUDDY_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"TALKBUDDY_LOG_FILE"`

	FeedbackDelay time.Duration `env:"TALKBUDDY_FEEDBACK_DELAY" envDefault:"1s"`
	AdvanceDelay  time.Duration `env:"TALKBUDDY_ADVANCE_DELAY" envDefault:"2s"`
	PromptDwell   time.Duration `env:"TALKBUDDY_PROMPT_DWELL" envDefault:"3s"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch store.Backend(c.Store) {
	case store.BackendSQLite, store.BackendRedis, store.BackendMemory:
	default:
		return fmt.Errorf("TALKBUDDY_STORE: unknown backend %q (want sqlite, redis or memory)", c.Store)
	}
	if c.FeedbackDelay < 0 || c.AdvanceDelay < 0 || c.PromptDwell < 0 {
		return fmt.Errorf("pacing delays must not be negative")
	}
	return nil
}

// Delays returns the conversation pacing.
func (c Config) Delays() conversation.Delays {
	return conversation.Delays{Feedback: c.FeedbackDelay, Advance: c.AdvanceDelay}
}

// StoreOptions resolves the store backend settings. The sqlite path falls
// back to store.DefaultDBPath when DB is unset.
func (c Config) StoreOptions() (store.Options, error) {
	opts := store.Options{
		Backend: store.Backend(c.Store),
		Redis: store.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		},
	}
	if opts.Backend != store.BackendSQLite {
		return opts, nil
	}

	if c.DB != "" {
		if err := store.EnsureDir(c.DB); err != nil {
			return store.Options{}, fmt.Errorf("create database dir: %w", err)
		}
		opts.DSN = c.DB
		return opts, nil
	}
	p, err := store.DefaultDBPath()
	if err != nil {
		return store.Options{}, fmt.Errorf("resolve database path: %w", err)
	}
	opts.DSN = p
	return opts, nil
}

// DefaultLogPath is where the full-screen UI logs when TALKBUDDY_LOG_FILE is
// unset: $XDG_STATE_HOME/talkbuddy/talkbuddy.log, else ~/.local/state/talkbuddy/talkbuddy.log.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "talkbuddy", "talkbuddy.log"), nil
}
