package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.yaml", `
logging:
  level: DEBUG
  console: true
server:
  addr: ":9090"
store:
  driver: sqlite
  path: ./markers.db
  busy_timeout: 1s
webhook:
  url: https://discord.com/api/webhooks/x/y
reddit:
  token: tok
  bot_user: courier-bot
relay:
  cooldown: 30m
  sweep_interval: 15m
  routing:
    - contains: [xbox]
      tag: "<@&1>"
  fallback_tag: "@Mod"
`)

	m := NewManager(path)
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "DEBUG" || !cfg.Logging.Console {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Path != "./markers.db" {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Relay.Routing[0].Tag != "<@&1>" {
		t.Fatalf("routing = %+v", cfg.Relay.Routing)
	}
	if got := m.Get(); got != cfg {
		t.Fatal("Get should return the committed config")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.json", `{"webhok": {"url": "x"}}`)
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for unknown top-level field")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "memory driver", cfg: Config{Store: StoreConfig{Driver: "memory"}}},
		{name: "redis without url", cfg: Config{Store: StoreConfig{Driver: "redis"}}, wantErr: true},
		{name: "sqlite without path", cfg: Config{Store: StoreConfig{Driver: "sqlite"}}, wantErr: true},
		{name: "unknown driver", cfg: Config{Store: StoreConfig{Driver: "etcd"}}, wantErr: true},
		{name: "bad cooldown", cfg: Config{Relay: RelayConfig{Cooldown: "soon"}}, wantErr: true},
		{name: "routing without tag", cfg: Config{Relay: RelayConfig{
			Routing: []RoutingRule{{Contains: []string{"xbox"}}},
		}}, wantErr: true},
		{name: "routing without substrings", cfg: Config{Relay: RelayConfig{
			Routing: []RoutingRule{{Tag: "<@&1>"}},
		}}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDurationField(t *testing.T) {
	t.Parallel()
	if d, err := ParseDurationField("x", "90s"); err != nil || d.Seconds() != 90 {
		t.Fatalf("ParseDurationField = (%v, %v)", d, err)
	}
	if d, err := ParseDurationField("x", ""); err != nil || d != 0 {
		t.Fatalf("empty should be zero: (%v, %v)", d, err)
	}
	if _, err := ParseDurationField("x", "-5s"); err == nil {
		t.Fatal("negative duration must fail")
	}
	if d, err := ParseDurationOrDefault("x", "", 30); err != nil || d != 30 {
		t.Fatalf("default not applied: (%v, %v)", d, err)
	}
}
