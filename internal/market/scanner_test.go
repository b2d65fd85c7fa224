package market

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	tickers   []Ticker
	perpetual map[string]bool
	ratios    map[string]float64
	failing   map[string]bool

	accountCalls []string
}

func (f *fakeSource) TopAccountRatio(ctx context.Context, symbol, period string) (MetricRecord, error) {
	f.accountCalls = append(f.accountCalls, symbol)
	if f.failing[symbol] {
		return MetricRecord{}, fmt.Errorf("boom for %s", symbol)
	}
	ratio, ok := f.ratios[symbol]
	if !ok {
		return MetricRecord{}, &EmptyResponseError{Symbol: symbol, Endpoint: "topLongShortAccountRatio"}
	}
	return NewMetricRecord(symbol, 1700000000000, ratio), nil
}

func (f *fakeSource) TopPositionRatio(ctx context.Context, symbol, period string) (MetricRecord, error) {
	return f.TopAccountRatio(ctx, symbol, period)
}

func (f *fakeSource) GlobalAccountRatio(ctx context.Context, symbol, period string) (MetricRecord, error) {
	return f.TopAccountRatio(ctx, symbol, period)
}

func (f *fakeSource) Tickers24h(ctx context.Context) ([]Ticker, error) {
	return f.tickers, nil
}

func (f *fakeSource) PerpetualSymbols(ctx context.Context) (map[string]bool, error) {
	return f.perpetual, nil
}

func ticker(symbol string, volume int64) Ticker {
	return Ticker{Symbol: symbol, QuoteVolume: decimal.NewFromInt(volume)}
}

func TestSkewSymmetry(t *testing.T) {
	// long 80% / short 20% and the mirrored split score identically.
	assert.True(t, Skew(4).Equal(Skew(0.25)))
	assert.True(t, Skew(1).Equal(decimal.NewFromInt(1)))
	assert.True(t, Skew(0).IsZero())
}

func TestScannerSelectsTopVolumeCandidates(t *testing.T) {
	src := &fakeSource{
		perpetual: map[string]bool{},
		ratios:    map[string]float64{},
	}
	for i := 0; i < 10; i++ {
		sym := fmt.Sprintf("C%02dUSDT", i)
		src.tickers = append(src.tickers, ticker(sym, int64(100+i)))
		src.perpetual[sym] = true
		src.ratios[sym] = 1.5
	}

	s := NewScanner(src, "1d")
	_, err := s.Scan(context.Background(), ScanOptions{Candidates: 5, Limit: 10})
	require.NoError(t, err)

	// The five highest volumes, descending.
	assert.Equal(t, []string{"C09USDT", "C08USDT", "C07USDT", "C06USDT", "C05USDT"}, src.accountCalls)
}

func TestScannerVolumeTieBreaksBySymbol(t *testing.T) {
	src := &fakeSource{
		tickers:   []Ticker{ticker("BBBUSDT", 100), ticker("AAAUSDT", 100), ticker("CCCUSDT", 200)},
		perpetual: map[string]bool{"AAAUSDT": true, "BBBUSDT": true, "CCCUSDT": true},
		ratios:    map[string]float64{"AAAUSDT": 1, "BBBUSDT": 1, "CCCUSDT": 1},
	}

	s := NewScanner(src, "1d")
	_, err := s.Scan(context.Background(), ScanOptions{Candidates: 3, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"CCCUSDT", "AAAUSDT", "BBBUSDT"}, src.accountCalls)
}

func TestScannerFiltersUniverse(t *testing.T) {
	src := &fakeSource{
		tickers: []Ticker{
			ticker("BTCUSDT", 1000),
			ticker("SPOTONLY", 900),
			ticker("SMALLUSDT", 50),
		},
		perpetual: map[string]bool{"BTCUSDT": true, "SMALLUSDT": true},
		ratios:    map[string]float64{"BTCUSDT": 2, "SMALLUSDT": 3},
	}

	s := NewScanner(src, "1d")
	res, err := s.Scan(context.Background(), ScanOptions{
		Candidates:     10,
		Limit:          10,
		MaxQuoteVolume: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// SPOTONLY is not a perpetual, BTCUSDT exceeds the volume ceiling.
	require.Len(t, res.Ranked, 1)
	assert.Equal(t, "SMALLUSDT", res.Ranked[0].Symbol)
}

func TestScannerContinuesPastSymbolFailure(t *testing.T) {
	src := &fakeSource{
		tickers:   []Ticker{ticker("AUSDT", 300), ticker("BUSDT", 200), ticker("CUSDT", 100)},
		perpetual: map[string]bool{"AUSDT": true, "BUSDT": true, "CUSDT": true},
		ratios:    map[string]float64{"AUSDT": 4, "CUSDT": 0.25},
		failing:   map[string]bool{"BUSDT": true},
	}

	s := NewScanner(src, "1d")
	res, err := s.Scan(context.Background(), ScanOptions{Candidates: 3, Limit: 3, MinSkew: decimal.NewFromInt(2)})
	require.NoError(t, err)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "BUSDT")
	require.Len(t, res.Ranked, 2)
	// Equal skews (4x both ways) order by symbol ascending.
	assert.Equal(t, "AUSDT", res.Ranked[0].Symbol)
	assert.Equal(t, "CUSDT", res.Ranked[1].Symbol)
	assert.Len(t, res.Highlighted, 2)
}

func TestScannerFailsWhenNothingCollected(t *testing.T) {
	src := &fakeSource{
		tickers:   []Ticker{ticker("AUSDT", 300)},
		perpetual: map[string]bool{"AUSDT": true},
		failing:   map[string]bool{"AUSDT": true},
	}

	s := NewScanner(src, "1d")
	_, err := s.Scan(context.Background(), ScanOptions{Candidates: 1, Limit: 1})
	assert.Error(t, err)
}

func TestScannerRanksBySkewDescending(t *testing.T) {
	src := &fakeSource{
		tickers:   []Ticker{ticker("AUSDT", 300), ticker("BUSDT", 200), ticker("CUSDT", 100)},
		perpetual: map[string]bool{"AUSDT": true, "BUSDT": true, "CUSDT": true},
		ratios:    map[string]float64{"AUSDT": 1.2, "BUSDT": 5, "CUSDT": 0.5},
	}

	s := NewScanner(src, "1d")
	res, err := s.Scan(context.Background(), ScanOptions{Candidates: 3, Limit: 2})
	require.NoError(t, err)

	require.Len(t, res.Ranked, 2)
	assert.Equal(t, "BUSDT", res.Ranked[0].Symbol)
	assert.Equal(t, "CUSDT", res.Ranked[1].Symbol)
}
