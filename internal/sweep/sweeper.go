// Package sweep evicts expired suppression markers from stores without
// native per-key expiry. It is redundant (and not started) for backends
// like redis that expire markers themselves.
package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"courierbot/internal/store"
	logx "courierbot/pkg/logx"
)

const DefaultInterval = 15 * time.Minute

type Sweeper struct {
	st     store.Store
	window time.Duration

	interval time.Duration
	now      func() time.Time
	log      logx.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

type Option func(*Sweeper)

// WithClock overrides the sweeper's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) { s.now = now }
}

// WithInterval overrides the sweep cadence.
func WithInterval(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

func New(st store.Store, window time.Duration, log logx.Logger, opts ...Option) *Sweeper {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Sweeper{
		st:       st,
		window:   window,
		interval: DefaultInterval,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules periodic sweeps. It is a no-op for stores with native
// expiry and is idempotent.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.st.NativeTTL() {
		s.log.Debug("store expires markers natively; sweeper not started")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		sctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		s.Sweep(sctx, s.now())
	})
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	c.Start()
	s.cron = c
	s.log.Info("sweeper started", logx.Duration("interval", s.interval), logx.Duration("window", s.window))
	return nil
}

func (s *Sweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Sweep deletes every marker whose age has reached the cool-down window.
// Unreadable entries are skipped, never aborting the pass: a bad row will
// be retried next sweep.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (removed int) {
	keys, err := s.st.Keys(ctx)
	if err != nil {
		s.log.Warn("sweep aborted: listing markers failed", logx.Err(err))
		return 0
	}

	cutoff := int64(s.window.Seconds())
	for _, id := range keys {
		ts, ok, err := s.st.Get(ctx, id)
		if err != nil {
			s.log.Warn("skipping unreadable marker", logx.String("thread", id), logx.Err(err))
			continue
		}
		if !ok {
			// Raced with a delete or an expiry; nothing to do.
			continue
		}
		if now.Unix()-ts < cutoff {
			continue
		}
		if err := s.st.Delete(ctx, id); err != nil {
			s.log.Warn("failed deleting expired marker", logx.String("thread", id), logx.Err(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Debug("sweep complete", logx.Int("removed", removed), logx.Int("scanned", len(keys)))
	}
	return removed
}
