// Package store persists talkbuddy's records as opaque blobs in a key-value
// backend: SQLite on disk, Redis, or process memory.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Well-known keys.
const (
	KeyProfile  = "talkbuddy:profile"
	KeyProgress = "talkbuddy:progress"
	KeyHistory  = "talkbuddy:history"
)

// ErrEmptyKey is returned for operations on the empty key.
var ErrEmptyKey = errors.New("store: key cannot be empty")

// KV is a blob store. A missing key is not an error: Get reports it with ok=false.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend Backend
	DSN     string // sqlite file path or DSN
	Redis   RedisOptions
}

// OpenKV opens the backend named by opts.
func OpenKV(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return Open(opts.DSN)
	case BackendRedis:
		return OpenRedis(ctx, opts.Redis)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
