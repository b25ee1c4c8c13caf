package config

type Config struct {
	Logging LoggingConfig `json:"logging"`
	Server  ServerConfig  `json:"server"`
	Store   StoreConfig   `json:"store"`
	Webhook WebhookConfig `json:"webhook"`
	Reddit  RedditConfig  `json:"reddit"`
	Relay   RelayConfig   `json:"relay"`
}

type LoggingConfig struct {
	Level   string            `json:"level"`
	Console bool              `json:"console"`
	File    LoggingFileConfig `json:"file"`
}

type LoggingFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// ServerConfig controls the HTTP intake endpoint that receives
// comment-submit events from the hosting trigger.
type ServerConfig struct {
	Addr string `json:"addr"` // default ":8080"
}

// StoreConfig selects the suppression marker backend.
//
// Driver values:
//   - "redis": markers expire natively via per-key TTL (no sweeper)
//   - "sqlite": database file; the pruning sweeper evicts expired markers
//   - "memory": in-process map; sweeper-pruned, lost on restart
type StoreConfig struct {
	Driver      string `json:"driver"`
	RedisURL    string `json:"redis_url,omitempty"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

// WebhookConfig controls the outbound courier-channel webhook.
//
// URL is re-read from the live config on every event, so it can be
// rotated without a restart.
type WebhookConfig struct {
	URL        string `json:"url"`
	RatePerSec int    `json:"rate_per_sec,omitempty"` // default 1
	Burst      int    `json:"burst,omitempty"`        // default 5
	Timeout    string `json:"timeout,omitempty"`      // Go duration string, default "10s"
}

// RedditConfig controls the comment-reply collaborator.
//
// BotUser is the bot's own account name; comments it authors are
// never treated as courier requests.
type RedditConfig struct {
	BaseURL string `json:"base_url,omitempty"` // default "https://oauth.reddit.com"
	Token   string `json:"token"`
	BotUser string `json:"bot_user"`
	Timeout string `json:"timeout,omitempty"` // Go duration string, default "10s"
}

// RelayConfig tunes the dedup decision engine.
//
// All durations are Go duration strings (e.g. "30m", "15m").
type RelayConfig struct {
	Cooldown      string        `json:"cooldown,omitempty"`       // default "30m"
	SweepInterval string        `json:"sweep_interval,omitempty"` // default "15m"
	Routing       []RoutingRule `json:"routing,omitempty"`
	FallbackTag   string        `json:"fallback_tag,omitempty"`
}

// RoutingRule maps a category-label substring to the mention tag placed at
// the front of the outbound notification. Rules are checked in order;
// first match wins.
type RoutingRule struct {
	Contains []string `json:"contains"`
	Tag      string   `json:"tag"`
}
