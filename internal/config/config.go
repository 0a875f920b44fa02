// Package config holds the bot configuration: a JSON5 file overlaid with
// environment variables. Secrets (the bot token) are expected from env in
// production; the file is for everything else.
package config

import (
	"fmt"
	"time"
)

const (
	// DefaultPrefix is the trigger string that marks a message for anonymization.
	DefaultPrefix = "@anon"

	// DefaultQueueTimeoutSec is how long a prefix-only request waits for a follow-up.
	DefaultQueueTimeoutSec = 60

	// Queue timeout bounds. Values outside this range are rejected at load.
	MinQueueTimeoutSec = 10
	MaxQueueTimeoutSec = 300

	// DefaultRateLimitRPM is the per-user budget of prefix commands per minute.
	DefaultRateLimitRPM = 20
)

// Config is the root configuration for the bot.
type Config struct {
	Telegram  TelegramConfig  `json:"telegram"`
	Anonymize AnonymizeConfig `json:"anonymize"`
}

// TelegramConfig configures the Bot API transport.
type TelegramConfig struct {
	Token string `json:"token,omitempty"` // usually from env ANONBOT_TELEGRAM_TOKEN
	Proxy string `json:"proxy,omitempty"` // optional HTTP proxy URL
}

// AnonymizeConfig configures the anonymization behaviour.
type AnonymizeConfig struct {
	Prefix          string `json:"prefix,omitempty"`
	QueueTimeoutSec int    `json:"queue_timeout_sec,omitempty"`
	ErrorNotices    *bool  `json:"error_notices,omitempty"` // nil = enabled
	RateLimitRPM    int    `json:"rate_limit_rpm,omitempty"` // 0 = disabled
}

// QueueTimeout returns the pending-queue timeout as a duration.
func (a AnonymizeConfig) QueueTimeout() time.Duration {
	return time.Duration(a.QueueTimeoutSec) * time.Second
}

// NoticesEnabled reports whether transient error notices should be posted.
func (a AnonymizeConfig) NoticesEnabled() bool {
	return a.ErrorNotices == nil || *a.ErrorNotices
}

// Validate checks invariants that must hold before the bot starts.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token is not set (config telegram.token or env ANONBOT_TELEGRAM_TOKEN)")
	}
	if c.Anonymize.Prefix == "" {
		return fmt.Errorf("anonymize prefix must not be empty")
	}
	t := c.Anonymize.QueueTimeoutSec
	if t < MinQueueTimeoutSec || t > MaxQueueTimeoutSec {
		return fmt.Errorf("queue_timeout_sec %d out of range [%d, %d]",
			t, MinQueueTimeoutSec, MaxQueueTimeoutSec)
	}
	if c.Anonymize.RateLimitRPM < 0 {
		return fmt.Errorf("rate_limit_rpm must not be negative")
	}
	return nil
}
