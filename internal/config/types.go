package config

// Config is the full startup configuration. It is loaded exactly once;
// there is no hot reload. All durations are Go duration strings
// (e.g. "500ms", "10s", "1m").
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`
	Feed     FeedConfig     `json:"feed"`

	Scheduler SchedulerConfig `json:"scheduler"`
	Rozklad   RozkladConfig   `json:"rozklad"`
	Health    HealthConfig    `json:"health"`

	Notifier *NotifierConfig `json:"notifier,omitempty"`
}

type TelegramConfig struct {
	Token string `json:"token"`
	// ChatID is the fixed destination chat for alert and daily messages.
	ChatID int64 `json:"chat_id"`
	// PollTimeout is a Go duration string (e.g. "10s", "2m").
	PollTimeout string `json:"poll_timeout,omitempty"`
}

// FeedConfig describes the polled air-alert feed.
//
// Shape values:
//   - "states": payload is {"states":[{"id":N,"alert":bool},...]}, filtered by region_id
//   - "single": payload is {"alert":bool}
//   - "" (default): sniff by presence of a "states" field
type FeedConfig struct {
	URL      string `json:"url"`
	RegionID int    `json:"region_id,omitempty"`
	Shape    string `json:"shape,omitempty"`
	// Interval between polls. Defaults to "60s".
	Interval string `json:"interval,omitempty"`
	// Timeout bounds one fetch. Defaults to "10s".
	Timeout string `json:"timeout,omitempty"`
}

type SchedulerConfig struct {
	// Timezone is the IANA trigger timezone, e.g. "Europe/Kyiv".
	Timezone string `json:"timezone,omitempty"`
	// RemembranceAt is the daily commemoration trigger, "HH:MM". Defaults to "09:00".
	RemembranceAt string `json:"remembrance_at,omitempty"`
}

type RozkladConfig struct {
	Enabled bool `json:"enabled"`
	// DailyLimit is the per-user per-calendar-day command quota. Defaults to 2.
	DailyLimit int `json:"daily_limit,omitempty"`
}

type HealthConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty"` // default ":8000"
}

// NotifierConfig controls the outbound send pipeline.
// If the whole section is omitted, defaults apply (enabled, queue 64, 1 msg/s).
type NotifierConfig struct {
	QueueSize  int `json:"queue_size,omitempty"`
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

type LoggingConfig struct {
	Level    string          `json:"level"`
	Console  bool            `json:"console"`
	File     LoggingFile     `json:"file"`
	Telegram LoggingTelegram `json:"telegram"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// LoggingTelegram mirrors warnings/errors to a chat. ChatID of 0 means
// "use the main destination chat".
type LoggingTelegram struct {
	Enabled    bool   `json:"enabled"`
	ChatID     int64  `json:"chat_id,omitempty"`
	MinLevel   string `json:"min_level,omitempty"`
	RatePerSec int    `json:"rate_per_sec,omitempty"`
}
