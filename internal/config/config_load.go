package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/titanous/json5"
)

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Anonymize: AnonymizeConfig{
			Prefix:          DefaultPrefix,
			QueueTimeoutSec: DefaultQueueTimeoutSec,
			RateLimitRPM:    DefaultRateLimitRPM,
		},
	}
}

// Load reads config from a JSON5 file, then overlays env vars.
// A missing file is not an error — defaults plus env are enough to run.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores defaults for fields the file explicitly zeroed.
func (c *Config) applyDefaults() {
	if c.Anonymize.Prefix == "" {
		c.Anonymize.Prefix = DefaultPrefix
	}
	if c.Anonymize.QueueTimeoutSec == 0 {
		c.Anonymize.QueueTimeoutSec = DefaultQueueTimeoutSec
	}
}

// applyEnvOverrides overlays env vars onto the config.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envStr("ANONBOT_TELEGRAM_TOKEN", &c.Telegram.Token)
	envStr("ANONBOT_TELEGRAM_PROXY", &c.Telegram.Proxy)
	envStr("ANONBOT_PREFIX", &c.Anonymize.Prefix)

	if v := os.Getenv("ANONBOT_QUEUE_TIMEOUT_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			c.Anonymize.QueueTimeoutSec = sec
		}
	}
	if v := os.Getenv("ANONBOT_ERROR_NOTICES"); v != "" {
		enabled := v == "true" || v == "1"
		c.Anonymize.ErrorNotices = &enabled
	}
	if v := os.Getenv("ANONBOT_RATE_LIMIT_RPM"); v != "" {
		if rpm, err := strconv.Atoi(v); err == nil && rpm >= 0 {
			c.Anonymize.RateLimitRPM = rpm
		}
	}
}
