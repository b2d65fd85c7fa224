package app

import (
	"context"
	"fmt"
	"time"

	"skewbot/internal/config"
	"skewbot/internal/gateway/binance"
	"skewbot/internal/logger"
	"skewbot/internal/market"
	"skewbot/internal/notifier"
	"skewbot/internal/pkg/symbol"
	"skewbot/internal/report"
	"skewbot/internal/transport"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// App wires the transport stack, metric client and notifier for one run.
type App struct {
	cfg    *config.Config
	source *binance.Source
	notify notifier.TextNotifier
	runID  string
}

func New(cfg *config.Config) (*App, error) {
	var pool *transport.Pool
	if cfg.Proxy.Pool.Enabled {
		pool = transport.NewPool(transport.PoolConfig{
			SourceURL: cfg.Proxy.Pool.SourceURL,
			Protocol:  cfg.Proxy.Pool.Protocol,
			Limit:     cfg.Proxy.Pool.Limit,
			Timeout:   cfg.Proxy.Pool.Timeout(),
		})
	}
	resolver, err := transport.NewResolver(cfg.Binance.BaseURLs, cfg.Proxy.StaticURL, pool)
	if err != nil {
		return nil, fmt.Errorf("building transport resolver: %w", err)
	}
	fetcher := transport.NewFetcher(transport.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     cfg.Retry.Backoff(),
	}, cfg.Binance.Timeout())
	orchestrator := transport.NewOrchestrator(resolver, fetcher, transport.Budget{
		AttemptsPerPath: cfg.Retry.AttemptsPerPath,
	})

	app := &App{
		cfg:    cfg,
		source: binance.New(orchestrator),
		runID:  uuid.NewString()[:8],
	}
	if cfg.Notify.Telegram.Enabled && cfg.Notify.Telegram.Configured() {
		app.notify = notifier.NewTelegram(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
	}
	logger.SetAttrs("run", app.runID)
	return app, nil
}

// RunReport executes the primary daily report: collect every configured pair
// or fail, then deliver. A partial report is never sent.
func (a *App) RunReport(ctx context.Context) error {
	pairs := symbol.NormalizeList(a.cfg.Report.Pairs)
	if len(pairs) == 0 {
		return fmt.Errorf("no pairs configured; set report.pairs or the PAIRS environment variable")
	}
	for _, raw := range a.cfg.Report.Pairs {
		if !symbol.IsValid(raw) {
			logger.Warnf("pair %q has no recognized quote asset, passing it through as-is", raw)
		}
	}

	collector := market.NewCollector(a.source, a.cfg.Report.Period)
	metrics, err := collector.Collect(ctx, pairs)
	if err != nil {
		return err
	}

	message := report.Daily(time.Now().UTC(), a.cfg.Report.Period, metrics)
	if a.notify == nil {
		fmt.Println(message)
		logger.Infof("telegram disabled, report printed to stdout")
		return nil
	}
	if err := a.notify.SendText(message); err != nil {
		return fmt.Errorf("delivering report: %w", err)
	}
	logger.Infof("report sent (%d pairs)", len(metrics))
	return nil
}

// ScanOverrides carries the command-line knobs for scan mode; zero values
// fall back to the configured defaults.
type ScanOverrides struct {
	Candidates     int
	Limit          int
	MaxQuoteVolume float64
}

// RunScan ranks the top-volume universe by skew and reports the symbols
// above the highlight threshold. Unlike the daily report, per-symbol
// failures do not abort the scan.
func (a *App) RunScan(ctx context.Context, ov ScanOverrides) error {
	opts := market.ScanOptions{
		Candidates: a.cfg.Scan.Candidates,
		Limit:      a.cfg.Scan.Limit,
		MinSkew:    decimal.NewFromFloat(a.cfg.Scan.MinSkew),
	}
	if ov.Candidates > 0 {
		opts.Candidates = ov.Candidates
	}
	if ov.Limit > 0 {
		opts.Limit = ov.Limit
	}
	maxVolume := a.cfg.Scan.MaxQuoteVolume
	if ov.MaxQuoteVolume > 0 {
		maxVolume = ov.MaxQuoteVolume
	}
	if maxVolume > 0 {
		opts.MaxQuoteVolume = decimal.NewFromFloat(maxVolume)
	}

	scanner := market.NewScanner(a.source, a.cfg.Report.Period)
	result, err := scanner.Scan(ctx, opts)
	if err != nil {
		return err
	}
	for _, note := range result.Errors {
		logger.Warnf("partial scan error: %s", note)
	}
	fmt.Println(report.Console(result.Ranked))

	if a.notify == nil {
		return nil
	}
	runAt := time.Now().UTC()
	if len(result.Highlighted) == 0 {
		notice := report.NoSkewNotice(runAt, opts.MinSkew, opts.Candidates)
		if err := a.notify.SendText(notice); err != nil {
			return fmt.Errorf("delivering scan notice: %w", err)
		}
		logger.Infof("no symbols above threshold, notice sent")
		return nil
	}
	parts := report.ScanParts(runAt, a.cfg.Report.Period, result.Highlighted, a.cfg.Scan.BatchSize)
	for i, part := range parts {
		if err := a.notify.SendText(part); err != nil {
			return fmt.Errorf("delivering scan part %d/%d: %w", i+1, len(parts), err)
		}
		logger.Infof("scan part %d/%d sent", i+1, len(parts))
	}
	return nil
}
