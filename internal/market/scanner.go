package market

import (
	"context"
	"fmt"
	"sort"

	"skewbot/internal/logger"

	"github.com/shopspring/decimal"
)

// Skew measures how far a long/short split deviates from even: the ratio
// itself when longs dominate, its inverse when shorts do. 1 means perfectly
// balanced; the measure is symmetric around it.
func Skew(ratio float64) decimal.Decimal {
	if ratio <= 0 {
		return decimal.Zero
	}
	d := decimal.NewFromFloat(ratio)
	one := decimal.NewFromInt(1)
	if d.LessThan(one) {
		return one.DivRound(d, 8)
	}
	return d
}

type ScanOptions struct {
	Candidates     int
	Limit          int
	MinSkew        decimal.Decimal
	MaxQuoteVolume decimal.Decimal // zero disables the ceiling
}

type ScanResult struct {
	// Ranked is the top-Limit slice by descending skew.
	Ranked []RankedSymbol
	// Highlighted are all scanned symbols whose skew exceeds MinSkew.
	Highlighted []RankedSymbol
	// Errors holds one note per symbol whose fetch failed; the scan
	// continues past them.
	Errors []string
}

// Scanner ranks the top-volume perpetual universe by long/short skew.
type Scanner struct {
	source Source
	period string
}

func NewScanner(source Source, period string) *Scanner {
	if period == "" {
		period = "1d"
	}
	return &Scanner{source: source, period: period}
}

func (s *Scanner) Scan(ctx context.Context, opts ScanOptions) (ScanResult, error) {
	candidates, tickers, err := s.selectCandidates(ctx, opts)
	if err != nil {
		return ScanResult{}, err
	}
	logger.Infof("scanning %d candidates by 24h quote volume", len(candidates))

	var result ScanResult
	scanned := make([]RankedSymbol, 0, len(candidates))
	for i, sym := range candidates {
		rec, err := s.source.TopAccountRatio(ctx, sym, s.period)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", sym, err))
			logger.Warnf("scan %d/%d %s failed: %v", i+1, len(candidates), sym, err)
			continue
		}
		ticker := tickers[sym]
		scanned = append(scanned, RankedSymbol{
			Symbol:      sym,
			QuoteVolume: ticker.QuoteVolume,
			Skew:        Skew(rec.Ratio),
			Accounts:    rec,
			LastPrice:   ticker.LastPrice,
			ChangePct:   ticker.ChangePct,
		})
		logger.Infof("scan %d/%d %s ok", i+1, len(candidates), sym)
	}
	if len(scanned) == 0 {
		return ScanResult{}, fmt.Errorf("all %d symbol requests failed: %v", len(candidates), result.Errors)
	}

	sort.SliceStable(scanned, func(i, j int) bool {
		if cmp := scanned[i].Skew.Cmp(scanned[j].Skew); cmp != 0 {
			return cmp > 0
		}
		return scanned[i].Symbol < scanned[j].Symbol
	})

	for _, entry := range scanned {
		if entry.Skew.GreaterThan(opts.MinSkew) {
			result.Highlighted = append(result.Highlighted, entry)
		}
	}
	if opts.Limit > 0 && len(scanned) > opts.Limit {
		scanned = scanned[:opts.Limit]
	}
	result.Ranked = scanned
	return result, nil
}

// selectCandidates fetches the ticker universe, keeps eligible USDT
// perpetuals under the optional volume ceiling and returns the top
// Candidates symbols by quote volume (ties break by symbol ascending, so the
// selection is deterministic for identical upstream data).
func (s *Scanner) selectCandidates(ctx context.Context, opts ScanOptions) ([]string, map[string]Ticker, error) {
	allowed, err := s.source.PerpetualSymbols(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing perpetual symbols: %w", err)
	}
	tickers, err := s.source.Tickers24h(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching 24h tickers: %w", err)
	}

	eligible := make([]Ticker, 0, len(tickers))
	bySymbol := make(map[string]Ticker, len(tickers))
	for _, t := range tickers {
		if !allowed[t.Symbol] {
			continue
		}
		if !opts.MaxQuoteVolume.IsZero() && t.QuoteVolume.GreaterThan(opts.MaxQuoteVolume) {
			continue
		}
		eligible = append(eligible, t)
		bySymbol[t.Symbol] = t
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if cmp := eligible[i].QuoteVolume.Cmp(eligible[j].QuoteVolume); cmp != 0 {
			return cmp > 0
		}
		return eligible[i].Symbol < eligible[j].Symbol
	})
	if opts.Candidates > 0 && len(eligible) > opts.Candidates {
		eligible = eligible[:opts.Candidates]
	}

	symbols := make([]string, 0, len(eligible))
	for _, t := range eligible {
		symbols = append(symbols, t.Symbol)
	}
	return symbols, bySymbol, nil
}
