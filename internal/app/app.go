// Package app wires the courier relay together: config, logging, the
// suppression store, the webhook and reply collaborators, the decision
// engine, the sweeper, and the HTTP intake.
//
// Client handles (store connection, HTTP clients) are constructed once at
// startup and shared read-only across concurrent event handlers; only the
// config snapshot and the composer are swapped at runtime.
package app

import (
	"context"
	"sync"
	"time"

	"courierbot/internal/config"
	"courierbot/internal/reddit"
	"courierbot/internal/relay"
	"courierbot/internal/server"
	"courierbot/internal/store"
	"courierbot/internal/sweep"
	"courierbot/internal/webhook"
	logx "courierbot/pkg/logx"
)

type App struct {
	cfgm *config.Manager
	logs *logx.Service
	log  logx.Logger

	st   store.Store
	eng  *relay.Engine
	sw   *sweep.Sweeper
	srv  *server.Server

	cancel context.CancelFunc
	wg     sync.WaitGroup
	errCh  chan error
}

func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}

	logSvc, log := logx.New(mapLoggingConfig(cfg))
	log = log.With(logx.String("comp", "app"))
	cfgm.SetLogger(log.With(logx.String("comp", "config")))

	st, err := openStore(cfg, logSvc.Logger())
	if err != nil {
		logSvc.Close()
		return nil, err
	}
	log.Info("suppression store ready",
		logx.String("driver", storeDriver(cfg)),
		logx.Bool("native_ttl", st.NativeTTL()),
	)

	wh := webhook.New(
		func() string {
			if c := cfgm.Get(); c != nil {
				return c.Webhook.URL
			}
			return ""
		},
		mapWebhookConfig(cfg),
		logSvc.Logger().With(logx.String("comp", "webhook")),
	)

	replier := reddit.New(mapRedditConfig(cfg), logSvc.Logger().With(logx.String("comp", "reddit")))

	cooldown, err := config.ParseDurationOrDefault("relay.cooldown", cfg.Relay.Cooldown, relay.CooldownWindow)
	if err != nil {
		_ = st.Close()
		logSvc.Close()
		return nil, err
	}
	eng := relay.NewEngine(st, wh, replier,
		mapComposer(cfg),
		cfg.Reddit.BotUser,
		logSvc.Logger().With(logx.String("comp", "relay")),
		relay.WithCooldown(cooldown),
	)

	sweepInterval, err := config.ParseDurationOrDefault("relay.sweep_interval", cfg.Relay.SweepInterval, sweep.DefaultInterval)
	if err != nil {
		_ = st.Close()
		logSvc.Close()
		return nil, err
	}
	sw := sweep.New(st, cooldown,
		logSvc.Logger().With(logx.String("comp", "sweep")),
		sweep.WithInterval(sweepInterval),
	)

	srv := server.New(server.Config{Addr: cfg.Server.Addr}, eng, st,
		logSvc.Logger().With(logx.String("comp", "http")))

	return &App{
		cfgm:  cfgm,
		logs:  logSvc,
		log:   log,
		st:    st,
		eng:   eng,
		sw:    sw,
		srv:   srv,
		errCh: make(chan error, 1),
	}, nil
}

// Err delivers the first fatal runtime error (e.g. the listener dying).
func (a *App) Err() <-chan error { return a.errCh }

func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.sw.Start(runCtx); err != nil {
		cancel()
		return err
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		_ = a.cfgm.Watch(runCtx)
	}()

	updates := a.cfgm.Subscribe(1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.cfgm.Unsubscribe(updates)
		for {
			select {
			case <-runCtx.Done():
				return
			case cfg, ok := <-updates:
				if !ok {
					return
				}
				a.applyConfig(cfg)
			}
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.srv.Run(); err != nil {
			select {
			case a.errCh <- err:
			default:
			}
		}
	}()

	a.log.Info("courier relay started")
	return nil
}

// applyConfig picks up the reloadable knobs. Store driver and listen
// address changes need a restart; the webhook URL is already read live.
func (a *App) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.logs.Apply(mapLoggingConfig(cfg))
	a.eng.SetComposer(mapComposer(cfg))
	a.log.Info("runtime config applied")
}

func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err := a.srv.Shutdown(shutCtx)

	a.sw.Stop()
	a.wg.Wait()

	if cerr := a.st.Close(); cerr != nil && err == nil {
		err = cerr
	}
	a.log.Info("courier relay stopped")
	a.logs.Close()
	return err
}
