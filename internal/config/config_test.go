package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validYAML = `
telegram:
  token: "123:abc"
  chat_id: -100500
logging:
  level: INFO
  console: true
feed:
  url: "https://alerts.example/api/states"
  region_id: 12
  shape: states
  interval: "60s"
scheduler:
  timezone: "Europe/Kyiv"
  remembrance_at: "09:00"
rozklad:
  enabled: true
health:
  enabled: true
  addr: ":8000"
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.yaml", validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.ChatID != -100500 {
		t.Fatalf("chat_id = %d", cfg.Telegram.ChatID)
	}
	if cfg.Feed.RegionID != 12 || cfg.Feed.Shape != "states" {
		t.Fatalf("feed = %+v", cfg.Feed)
	}
	if got := cfg.Location().String(); got != "Europe/Kyiv" {
		t.Fatalf("location = %s", got)
	}
	if d, err := ParseDurationOrDefault("feed.interval", cfg.Feed.Interval, time.Minute); err != nil || d != time.Minute {
		t.Fatalf("interval = %v, %v", d, err)
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.json", `{
		"telegram": {"token": "123:abc", "chat_id": 42},
		"logging": {"level": "INFO", "console": true, "file": {"enabled": false, "path": ""}, "telegram": {"enabled": false}},
		"feed": {"url": "https://alerts.example/api"},
		"scheduler": {},
		"rozklad": {"enabled": false},
		"health": {"enabled": false}
	}`)
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.yaml", validYAML+"\nmystery: 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected unknown-field error")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	base := func() *Config {
		return &Config{
			Telegram: TelegramConfig{Token: "t", ChatID: 1},
			Feed:     FeedConfig{URL: "https://x", RegionID: 12},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Telegram.Token = "" }, wantErr: true},
		{name: "missing chat", mutate: func(c *Config) { c.Telegram.ChatID = 0 }, wantErr: true},
		{name: "missing feed url", mutate: func(c *Config) { c.Feed.URL = "" }, wantErr: true},
		{name: "bad shape", mutate: func(c *Config) { c.Feed.Shape = "xml" }, wantErr: true},
		{name: "states without region", mutate: func(c *Config) { c.Feed.Shape = "states"; c.Feed.RegionID = 0 }, wantErr: true},
		{name: "bad interval", mutate: func(c *Config) { c.Feed.Interval = "soon" }, wantErr: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "bad remembrance time", mutate: func(c *Config) { c.Scheduler.RemembranceAt = "9 o'clock" }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
