package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load reads the yaml config file, applies environment overrides, fills
// defaults and validates the result. A missing file is not an error when the
// required values arrive via environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file failed (%s): %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}

	applyEnvOverrides(&cfg)
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides keeps the historical environment contract: PAIRS,
// TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID win over file values.
func applyEnvOverrides(c *Config) {
	if raw := strings.TrimSpace(os.Getenv("PAIRS")); raw != "" {
		var pairs []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				pairs = append(pairs, item)
			}
		}
		if len(pairs) > 0 {
			c.Report.Pairs = pairs
		}
	}
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); token != "" {
		c.Notify.Telegram.BotToken = token
	}
	if chatID := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); chatID != "" {
		c.Notify.Telegram.ChatID = chatID
	}
}
