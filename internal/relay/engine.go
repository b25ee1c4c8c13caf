package relay

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"courierbot/internal/event"
	logx "courierbot/pkg/logx"
)

// MarkerStore is the slice of the suppression store the engine needs.
// Absence of a marker is a normal non-error result.
type MarkerStore interface {
	Get(ctx context.Context, threadID string) (ts int64, ok bool, err error)
	Put(ctx context.Context, threadID string, ts int64, ttl time.Duration) error
}

// Notifier delivers the outbound courier-channel message.
type Notifier interface {
	Send(ctx context.Context, content string) error
}

// Replier posts a reply under the triggering comment.
type Replier interface {
	Reply(ctx context.Context, commentID, text string) error
}

// Outcome is the engine's terminal state for one event.
type Outcome string

const (
	OutcomeIgnored    Outcome = "ignored"
	OutcomeSuppressed Outcome = "suppressed"
	OutcomeAccepted   Outcome = "accepted"
)

// Engine decides, per comment event, whether to relay a courier request.
//
// State machine: Start -> ignored | suppressed (reply only) |
// accepted (notify + reply + marker write). The marker is written only
// after the notification is delivered, so a failed delivery leaves the
// window closed and the requester free to retry.
//
// Concurrent events for the same thread race last-write-wins on the store;
// the cool-down only needs approximate single-flight behavior.
type Engine struct {
	store    MarkerStore
	notifier Notifier
	replier  Replier
	composer atomic.Pointer[Composer]

	botUser  string
	cooldown time.Duration
	now      func() time.Time
	log      logx.Logger
}

type EngineOption func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithCooldown overrides the suppression window.
func WithCooldown(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.cooldown = d
		}
	}
}

func NewEngine(store MarkerStore, notifier Notifier, replier Replier, composer *Composer, botUser string, log logx.Logger, opts ...EngineOption) *Engine {
	if log.IsZero() {
		log = logx.Nop()
	}
	e := &Engine{
		store:    store,
		notifier: notifier,
		replier:  replier,
		botUser:  botUser,
		cooldown: CooldownWindow,
		now:      time.Now,
		log:      log,
	}
	e.SetComposer(composer)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cooldown returns the active suppression window.
func (e *Engine) Cooldown() time.Duration { return e.cooldown }

// SetComposer swaps the message composer (routing table updates apply on
// the next event). Safe to call concurrently with Process.
func (e *Engine) SetComposer(c *Composer) {
	if c == nil {
		c = NewComposer(nil, "")
	}
	e.composer.Store(c)
}

// Composer returns the active message composer.
func (e *Engine) Composer() *Composer { return e.composer.Load() }

// Process runs one event to completion (or its first fatal error).
func (e *Engine) Process(ctx context.Context, ev event.CommentEvent) (Outcome, error) {
	if !Eligible(ev, e.botUser) {
		return OutcomeIgnored, nil
	}

	now := e.now()
	ts, found, err := e.store.Get(ctx, ev.ThreadID)
	if err != nil {
		return OutcomeIgnored, fmt.Errorf("%w: get %s: %v", ErrStoreUnavailable, ev.ThreadID, err)
	}

	// Strict <: an acceptance aged exactly one window is already expired.
	if found && now.Unix()-ts < int64(e.cooldown.Seconds()) {
		e.log.Debug("request suppressed",
			logx.String("thread", ev.ThreadID),
			logx.Int64("marker_age_s", now.Unix()-ts),
		)
		if err := e.replier.Reply(ctx, ev.CommentID, e.Composer().SuppressedReply(ev.AuthorName)); err != nil {
			return OutcomeSuppressed, fmt.Errorf("%w: %v", ErrReplyFailed, err)
		}
		return OutcomeSuppressed, nil
	}

	if err := e.notifier.Send(ctx, e.Composer().Notification(ev)); err != nil {
		// Fatal: no reply, no marker. The requester may retry.
		return OutcomeIgnored, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	e.log.Info("courier request relayed",
		logx.String("thread", ev.ThreadID),
		logx.String("author", ev.AuthorName),
		logx.String("tag", e.Composer().Tag(ev.Category)),
	)

	var errs []error
	if err := e.replier.Reply(ctx, ev.CommentID, e.Composer().AcceptedReply(ev.AuthorName)); err != nil {
		// Non-fatal: the notification already went out and must not be "undone".
		errs = append(errs, fmt.Errorf("%w: %v", ErrReplyFailed, err))
	}
	if err := e.store.Put(ctx, ev.ThreadID, now.Unix(), e.cooldown); err != nil {
		errs = append(errs, fmt.Errorf("%w: put %s: %v", ErrStoreUnavailable, ev.ThreadID, err))
	}
	return OutcomeAccepted, errors.Join(errs...)
}
