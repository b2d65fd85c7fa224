package market

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MetricRecord is the latest long/short reading for one symbol on one
// endpoint. Percentages derive from the ratio: long = r/(1+r), short is the
// remainder.
type MetricRecord struct {
	Symbol    string
	Timestamp time.Time
	Ratio     float64
	LongPct   float64
	ShortPct  float64
}

func NewMetricRecord(symbol string, tsMillis int64, ratio float64) MetricRecord {
	rec := MetricRecord{
		Symbol: symbol,
		Ratio:  ratio,
	}
	if tsMillis > 0 {
		rec.Timestamp = time.UnixMilli(tsMillis).UTC()
	}
	if ratio > 0 {
		rec.LongPct = ratio / (1 + ratio) * 100
		rec.ShortPct = 100 - rec.LongPct
	}
	return rec
}

// PairMetrics groups the three ratio variants collected for one pair.
type PairMetrics struct {
	Symbol    string
	Accounts  MetricRecord
	Positions MetricRecord
	Global    MetricRecord
}

// Ticker is the 24h statistics subset the scanner needs.
type Ticker struct {
	Symbol      string
	LastPrice   float64
	ChangePct   float64
	QuoteVolume decimal.Decimal
}

// RankedSymbol is a scan result entry, ordered by descending skew.
type RankedSymbol struct {
	Symbol      string
	QuoteVolume decimal.Decimal
	Skew        decimal.Decimal
	Accounts    MetricRecord
	LastPrice   float64
	ChangePct   float64
}

// EmptyResponseError reports a metric endpoint answering with no rows for
// the requested period. The primary report treats this as fatal: a silently
// missing pair is worse than no report.
type EmptyResponseError struct {
	Symbol   string
	Endpoint string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("no %s data returned for %s", e.Endpoint, e.Symbol)
}

// Source is the metric client surface the collector and scanner consume.
type Source interface {
	TopAccountRatio(ctx context.Context, symbol, period string) (MetricRecord, error)
	TopPositionRatio(ctx context.Context, symbol, period string) (MetricRecord, error)
	GlobalAccountRatio(ctx context.Context, symbol, period string) (MetricRecord, error)
	Tickers24h(ctx context.Context) ([]Ticker, error)
	PerpetualSymbols(ctx context.Context) (map[string]bool, error)
}
