package config

const (
	defaultAppEnv           = "prod"
	defaultAppLogLevel      = "info"
	defaultReportPeriod     = "1d"
	defaultBinanceREST      = "https://fapi.binance.com"
	defaultBinanceTimeout   = 10
	defaultRetryAttempts    = 3
	defaultRetryBackoff     = 1.0
	defaultAttemptsPerPath  = 1
	defaultPoolProtocol     = "http"
	defaultPoolLimit        = 10
	defaultPoolTimeout      = 10
	defaultScanCandidates   = 120
	defaultScanLimit        = 10
	defaultScanMinSkew      = 2.0
	defaultScanBatchSize    = 10
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Report.applyDefaults()
	c.Binance.applyDefaults()
	c.Retry.applyDefaults()
	c.Proxy.applyDefaults()
	c.Scan.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if a.Env == "" {
		a.Env = defaultAppEnv
	}
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
}

func (r *ReportConfig) applyDefaults() {
	if r.Period == "" {
		r.Period = defaultReportPeriod
	}
}

func (b *BinanceConfig) applyDefaults() {
	if len(b.BaseURLs) == 0 {
		b.BaseURLs = []string{defaultBinanceREST}
	}
	if b.TimeoutSeconds <= 0 {
		b.TimeoutSeconds = defaultBinanceTimeout
	}
}

func (r *RetryConfig) applyDefaults() {
	if r.MaxAttempts <= 0 {
		r.MaxAttempts = defaultRetryAttempts
	}
	if r.BackoffSeconds <= 0 {
		r.BackoffSeconds = defaultRetryBackoff
	}
	if r.AttemptsPerPath <= 0 {
		r.AttemptsPerPath = defaultAttemptsPerPath
	}
}

func (p *ProxyConfig) applyDefaults() {
	if p.Pool.Protocol == "" {
		p.Pool.Protocol = defaultPoolProtocol
	}
	if p.Pool.Limit <= 0 {
		p.Pool.Limit = defaultPoolLimit
	}
	if p.Pool.TimeoutSeconds <= 0 {
		p.Pool.TimeoutSeconds = defaultPoolTimeout
	}
}

func (s *ScanConfig) applyDefaults() {
	if s.Candidates <= 0 {
		s.Candidates = defaultScanCandidates
	}
	if s.Limit <= 0 {
		s.Limit = defaultScanLimit
	}
	if s.MinSkew <= 0 {
		s.MinSkew = defaultScanMinSkew
	}
	if s.BatchSize <= 0 {
		s.BatchSize = defaultScanBatchSize
	}
}
