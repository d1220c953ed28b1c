package progress

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/talkbuddy/internal/conversation"
	"github.com/abhisek/talkbuddy/internal/schema"
	"github.com/abhisek/talkbuddy/internal/store"
)

//go:embed progress.schema.json
var aggregateSchemaJSON []byte

var aggregateSchema = schema.MustCompile("progress-aggregate", aggregateSchemaJSON)

// HistoryLimit caps the number of completed sessions kept in history.
const HistoryLimit = 50

// HistoryEntry records one completed session.
type HistoryEntry struct {
	SessionID   string    `json:"session_id"`
	ScenarioID  string    `json:"scenario_id"`
	Stars       int       `json:"stars"`
	Badges      []Badge   `json:"badges,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Outcome is the result of recording a completion.
type Outcome struct {
	Aggregate Aggregate
	Unlocked  []Badge
}

// Service applies completions to the persisted aggregate.
// Persistence failures are logged and never returned to the caller.
type Service struct {
	kv     store.KV
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service over kv. A nil logger uses slog.Default().
func NewService(kv store.KV, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{kv: kv, logger: logger, now: time.Now}
}

// Load returns the stored aggregate, or a fresh one when nothing usable is stored.
func (s *Service) Load(ctx context.Context) Aggregate {
	agg, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("load progress failed, starting fresh", "error", err)
		return New()
	}
	return agg
}

// load returns an error only when the store itself cannot be read. An absent
// or invalid blob yields a fresh aggregate.
func (s *Service) load(ctx context.Context) (Aggregate, error) {
	data, ok, err := s.kv.Get(ctx, store.KeyProgress)
	if err != nil {
		return Aggregate{}, fmt.Errorf("read progress: %w", err)
	}
	if !ok {
		return New(), nil
	}

	agg, err := decodeAggregate(data)
	if err != nil {
		s.logger.Warn("stored progress is invalid, starting fresh", "error", err)
		return New(), nil
	}
	return agg, nil
}

func decodeAggregate(data []byte) (Aggregate, error) {
	if err := aggregateSchema.Validate(data); err != nil {
		return Aggregate{}, err
	}
	var agg Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return Aggregate{}, fmt.Errorf("decode progress: %w", err)
	}
	return agg.Normalize(), nil
}

// Record applies a completed session and persists the result. When the
// stored aggregate cannot be read, nothing is written so the saved record
// survives; the outcome is then computed from a fresh aggregate.
func (s *Service) Record(ctx context.Context, c conversation.Completion) Outcome {
	base, err := s.load(ctx)
	readable := err == nil
	if !readable {
		s.logger.Warn("load progress failed, not saving this session", "error", err)
		base = New()
	}
	agg, unlocked := Apply(base, c.Stars)

	if readable {
		if err := store.SaveJSON(ctx, s.kv, store.KeyProgress, agg); err != nil {
			s.logger.Warn("save progress failed", "error", err)
		}
		s.appendHistory(ctx, HistoryEntry{
			SessionID:   c.SessionID,
			ScenarioID:  c.ScenarioID,
			Stars:       c.Stars,
			Badges:      unlocked,
			CompletedAt: s.now(),
		})
	}

	s.logger.Info("scenario completed",
		"scenario", c.ScenarioID,
		"session", c.SessionID,
		"stars", c.Stars,
		"total_stars", agg.Stars,
		"level", agg.Level,
		"unlocked", len(unlocked),
		"saved", readable,
	)
	return Outcome{Aggregate: agg, Unlocked: unlocked}
}

// History returns completed sessions, most recent first.
func (s *Service) History(ctx context.Context) []HistoryEntry {
	entries, err := s.loadHistory(ctx)
	if err != nil {
		s.logger.Warn("load history failed", "error", err)
		return nil
	}
	return entries
}

// loadHistory returns an error only when the store cannot be read. Invalid
// stored history is dropped.
func (s *Service) loadHistory(ctx context.Context) ([]HistoryEntry, error) {
	data, ok, err := s.kv.Get(ctx, store.KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("stored history is invalid, starting fresh", "error", err)
		return nil, nil
	}
	return entries, nil
}

func (s *Service) appendHistory(ctx context.Context, e HistoryEntry) {
	prev, err := s.loadHistory(ctx)
	if err != nil {
		s.logger.Warn("load history failed, not saving entry", "error", err)
		return
	}
	entries := append([]HistoryEntry{e}, prev...)
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	if err := store.SaveJSON(ctx, s.kv, store.KeyHistory, entries); err != nil {
		s.logger.Warn("save history failed", "error", err)
	}
}

// Reset deletes stored progress and history.
func (s *Service) Reset(ctx context.Context) error {
	for _, key := range []string{store.KeyProgress, store.KeyHistory} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
	}
	return nil
}
