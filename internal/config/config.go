package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Load reads, strictly decodes and validates the config file.
// Both JSON and YAML are accepted (YAML is coerced to JSON first so
// DisallowUnknownFields applies to both).
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jb, _, err := coerceToJSONBytes(path, b)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("invalid config: trailing data")
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return errors.New("telegram.token is required")
	}
	if c.Telegram.ChatID == 0 {
		return errors.New("telegram.chat_id is required")
	}
	if strings.TrimSpace(c.Feed.URL) == "" {
		return errors.New("feed.url is required")
	}
	switch strings.TrimSpace(c.Feed.Shape) {
	case "", "states", "single":
	default:
		return fmt.Errorf("feed.shape: unknown value %q (want states|single)", c.Feed.Shape)
	}
	if c.Feed.Shape == "states" && c.Feed.RegionID == 0 {
		return errors.New("feed.region_id is required when feed.shape is states")
	}
	if _, err := ParseDurationField("feed.interval", c.Feed.Interval); err != nil {
		return err
	}
	if _, err := ParseDurationField("feed.timeout", c.Feed.Timeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("telegram.poll_timeout", c.Telegram.PollTimeout); err != nil {
		return err
	}
	if tz := strings.TrimSpace(c.Scheduler.Timezone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("scheduler.timezone: invalid %q: %w", tz, err)
		}
	}
	if at := strings.TrimSpace(c.Scheduler.RemembranceAt); at != "" {
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("scheduler.remembrance_at: invalid %q, expected HH:MM", at)
		}
	}
	if c.Rozklad.DailyLimit < 0 {
		return errors.New("rozklad.daily_limit must be >= 0")
	}
	if c.Notifier != nil {
		if c.Notifier.QueueSize < 0 {
			return errors.New("notifier.queue_size must be >= 0")
		}
		if c.Notifier.RatePerSec < 0 {
			return errors.New("notifier.rate_per_sec must be >= 0")
		}
	}
	return nil
}

// Location resolves the scheduler timezone, falling back to time.Local.
// Validate() already rejected unknown zones, so errors here only happen for
// an empty setting.
func (c *Config) Location() *time.Location {
	tz := strings.TrimSpace(c.Scheduler.Timezone)
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}
