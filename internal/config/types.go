package config

import (
	"strings"
	"time"
)

type Config struct {
	App     AppConfig     `toml:"app"`
	Report  ReportConfig  `toml:"report"`
	Binance BinanceConfig `toml:"binance"`
	Retry   RetryConfig   `toml:"retry"`
	Proxy   ProxyConfig   `toml:"proxy"`
	Scan    ScanConfig    `toml:"scan"`
	Notify  NotifyConfig  `toml:"notify"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// ReportConfig drives the primary daily report.
type ReportConfig struct {
	Pairs  []string `toml:"pairs"`
	Period string   `toml:"period"`
}

type BinanceConfig struct {
	BaseURLs       []string `toml:"base_urls"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

func (b BinanceConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// RetryConfig layers two policies: max_attempts/backoff_seconds govern the
// in-path retry loop, attempts_per_path governs how often the orchestrator
// re-enters the same transport path before rotating to the next one.
type RetryConfig struct {
	MaxAttempts     int     `toml:"max_attempts"`
	BackoffSeconds  float64 `toml:"backoff_seconds"`
	AttemptsPerPath int     `toml:"attempts_per_path"`
}

func (r RetryConfig) Backoff() time.Duration {
	return time.Duration(r.BackoffSeconds * float64(time.Second))
}

type ProxyConfig struct {
	StaticURL string     `toml:"static_url"`
	Pool      PoolConfig `toml:"pool"`
}

// PoolConfig controls the free-proxy pool used to route around region blocks.
type PoolConfig struct {
	Enabled        bool   `toml:"enabled"`
	SourceURL      string `toml:"source_url"`
	Protocol       string `toml:"protocol"`
	Limit          int    `toml:"limit"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func (p PoolConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type ScanConfig struct {
	Candidates     int     `toml:"candidates"`
	Limit          int     `toml:"limit"`
	MinSkew        float64 `toml:"min_skew"`
	MaxQuoteVolume float64 `toml:"max_quote_volume"`
	BatchSize      int     `toml:"batch_size"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

func (t TelegramConfig) Configured() bool {
	return strings.TrimSpace(t.BotToken) != "" && strings.TrimSpace(t.ChatID) != ""
}
