package config

import (
	"fmt"
	"net/url"
	"strings"
)

func validate(c *Config) error {
	if err := c.Binance.validate(); err != nil {
		return err
	}
	if err := c.Retry.validate(); err != nil {
		return err
	}
	if err := c.Proxy.validate(); err != nil {
		return err
	}
	return nil
}

func (b *BinanceConfig) validate() error {
	for _, base := range b.BaseURLs {
		u, err := url.Parse(strings.TrimSpace(base))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("binance.base_urls contains invalid url: %q", base)
		}
	}
	return nil
}

func (r *RetryConfig) validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be >= 1")
	}
	if r.AttemptsPerPath < 1 {
		return fmt.Errorf("retry.attempts_per_path must be >= 1")
	}
	if r.BackoffSeconds < 0 {
		return fmt.Errorf("retry.backoff_seconds must be >= 0")
	}
	return nil
}

func (p *ProxyConfig) validate() error {
	if static := strings.TrimSpace(p.StaticURL); static != "" {
		u, err := url.Parse(static)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("proxy.static_url is not a valid proxy url: %q", static)
		}
	}
	if p.Pool.Enabled && strings.TrimSpace(p.Pool.SourceURL) == "" {
		return fmt.Errorf("proxy.pool.source_url is required when the pool is enabled")
	}
	switch strings.ToLower(p.Pool.Protocol) {
	case "http", "https", "socks5", "socks5h":
	default:
		return fmt.Errorf("proxy.pool.protocol must be one of http, https, socks5, socks5h")
	}
	return nil
}
