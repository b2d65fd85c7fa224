package binance

import (
	"context"
	"fmt"
	"strings"

	"skewbot/internal/market"
	"skewbot/internal/pkg/symbol"

	"github.com/adshao/go-binance/v2/futures"
)

// The endpoints return a JSON array ordered oldest to newest; with limit 1
// the trailing element is the latest reading for the requested period. An
// empty array is a successful transport call but a fatal data condition,
// surfaced as market.EmptyResponseError after the orchestrator returns.

func (s *Source) TopAccountRatio(ctx context.Context, sym, period string) (market.MetricRecord, error) {
	binanceSymbol := symbol.Parse(sym).Binance()
	period = strings.ToLower(strings.TrimSpace(period))
	if binanceSymbol == "" || period == "" {
		return market.MetricRecord{}, fmt.Errorf("symbol and period are required")
	}
	var (
		found bool
		rec   market.MetricRecord
	)
	err := s.transport.Do(ctx, func(ctx context.Context, client *futures.Client) error {
		found = false
		raw, err := client.NewTopLongShortAccountRatioService().
			Symbol(binanceSymbol).
			Period(period).
			Limit(1).
			Do(ctx)
		if err != nil {
			return err
		}
		for i := len(raw) - 1; i >= 0 && !found; i-- {
			last := raw[i]
			if last == nil {
				continue
			}
			rec = market.NewMetricRecord(binanceSymbol, int64(last.Timestamp), parseFloat(last.LongShortRatio))
			found = true
		}
		return nil
	})
	if err != nil {
		return market.MetricRecord{}, err
	}
	if !found {
		return market.MetricRecord{}, &market.EmptyResponseError{Symbol: binanceSymbol, Endpoint: "topLongShortAccountRatio"}
	}
	return rec, nil
}

func (s *Source) TopPositionRatio(ctx context.Context, sym, period string) (market.MetricRecord, error) {
	binanceSymbol := symbol.Parse(sym).Binance()
	period = strings.ToLower(strings.TrimSpace(period))
	if binanceSymbol == "" || period == "" {
		return market.MetricRecord{}, fmt.Errorf("symbol and period are required")
	}
	var (
		found bool
		rec   market.MetricRecord
	)
	err := s.transport.Do(ctx, func(ctx context.Context, client *futures.Client) error {
		found = false
		raw, err := client.NewTopLongShortPositionRatioService().
			Symbol(binanceSymbol).
			Period(period).
			Limit(1).
			Do(ctx)
		if err != nil {
			return err
		}
		for i := len(raw) - 1; i >= 0 && !found; i-- {
			last := raw[i]
			if last == nil {
				continue
			}
			rec = market.NewMetricRecord(binanceSymbol, int64(last.Timestamp), parseFloat(last.LongShortRatio))
			found = true
		}
		return nil
	})
	if err != nil {
		return market.MetricRecord{}, err
	}
	if !found {
		return market.MetricRecord{}, &market.EmptyResponseError{Symbol: binanceSymbol, Endpoint: "topLongShortPositionRatio"}
	}
	return rec, nil
}

func (s *Source) GlobalAccountRatio(ctx context.Context, sym, period string) (market.MetricRecord, error) {
	binanceSymbol := symbol.Parse(sym).Binance()
	period = strings.ToLower(strings.TrimSpace(period))
	if binanceSymbol == "" || period == "" {
		return market.MetricRecord{}, fmt.Errorf("symbol and period are required")
	}
	var (
		found bool
		rec   market.MetricRecord
	)
	err := s.transport.Do(ctx, func(ctx context.Context, client *futures.Client) error {
		found = false
		raw, err := client.NewLongShortRatioService().
			Symbol(binanceSymbol).
			Period(period).
			Limit(1).
			Do(ctx)
		if err != nil {
			return err
		}
		for i := len(raw) - 1; i >= 0 && !found; i-- {
			last := raw[i]
			if last == nil {
				continue
			}
			rec = market.NewMetricRecord(binanceSymbol, int64(last.Timestamp), parseFloat(last.LongShortRatio))
			found = true
		}
		return nil
	})
	if err != nil {
		return market.MetricRecord{}, err
	}
	if !found {
		return market.MetricRecord{}, &market.EmptyResponseError{Symbol: binanceSymbol, Endpoint: "globalLongShortAccountRatio"}
	}
	return rec, nil
}
