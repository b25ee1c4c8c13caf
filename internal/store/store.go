// Package store persists suppression markers: one unix timestamp per
// discussion thread, recording the last accepted courier request.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	logx "courierbot/pkg/logx"
)

// Config configures the marker store.
//
// Driver values:
//   - "redis": markers self-expire via per-key TTL
//   - "sqlite": SQLite database file; expired markers are swept
//   - "memory" (or empty): in-process map; swept, lost on restart
type Config struct {
	Driver      string
	RedisURL    string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Store is the suppression marker API.
//
// Absence of a marker is a normal non-error result and is equivalent to
// "never requested". Concurrent Puts for the same thread race
// last-write-wins; the cool-down only needs approximate single-flight.
type Store interface {
	// Get returns the marker timestamp for a thread, or ok=false when absent.
	Get(ctx context.Context, threadID string) (ts int64, ok bool, err error)
	// Put records/overwrites the marker. Backends with native expiry must
	// make it self-expire after ttl.
	Put(ctx context.Context, threadID string, ts int64, ttl time.Duration) error
	// Delete is idempotent; deleting an absent key is not an error.
	Delete(ctx context.Context, threadID string) error
	// Keys lists thread ids with a live marker (the sweeper's input).
	Keys(ctx context.Context) ([]string, error)
	// NativeTTL reports whether markers expire on their own. When true,
	// the pruning sweeper is redundant and is not scheduled.
	NativeTTL() bool
	// Ping checks backend reachability.
	Ping(ctx context.Context) error
	Close() error
}

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if log.IsZero() {
		log = logx.Nop()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return openRedis(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown store driver: " + cfg.Driver)
	}
}
