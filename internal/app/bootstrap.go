package app

import (
	"strings"
	"time"

	"courierbot/internal/config"
	"courierbot/internal/reddit"
	"courierbot/internal/relay"
	"courierbot/internal/store"
	"courierbot/internal/webhook"
	logx "courierbot/pkg/logx"
)

// Mapping helpers between the config file schema and per-package configs.
// Duration strings were validated by config.Validate(), so parse errors
// here fall back to defaults instead of failing startup.

func mapLoggingConfig(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	}
}

func storeDriver(cfg *config.Config) string {
	d := strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if d == "" {
		return "memory"
	}
	return d
}

func openStore(cfg *config.Config, log logx.Logger) (store.Store, error) {
	busy, err := config.ParseDurationField("store.busy_timeout", cfg.Store.BusyTimeout)
	if err != nil {
		return nil, err
	}
	return store.Open(store.Config{
		Driver:      cfg.Store.Driver,
		RedisURL:    cfg.Store.RedisURL,
		Path:        cfg.Store.Path,
		BusyTimeout: busy,
	}, log.With(logx.String("comp", "store")))
}

func mapWebhookConfig(cfg *config.Config) webhook.Config {
	timeout, _ := config.ParseDurationOrDefault("webhook.timeout", cfg.Webhook.Timeout, 10*time.Second)
	return webhook.Config{
		RatePerSec: cfg.Webhook.RatePerSec,
		Burst:      cfg.Webhook.Burst,
		Timeout:    timeout,
	}
}

func mapRedditConfig(cfg *config.Config) reddit.Config {
	timeout, _ := config.ParseDurationOrDefault("reddit.timeout", cfg.Reddit.Timeout, 10*time.Second)
	return reddit.Config{
		BaseURL: cfg.Reddit.BaseURL,
		Token:   cfg.Reddit.Token,
		Timeout: timeout,
	}
}

func mapComposer(cfg *config.Config) *relay.Composer {
	rules := make([]relay.RoutingRule, 0, len(cfg.Relay.Routing))
	for _, r := range cfg.Relay.Routing {
		rules = append(rules, relay.RoutingRule{Contains: r.Contains, Tag: r.Tag})
	}
	return relay.NewComposer(rules, cfg.Relay.FallbackTag)
}
