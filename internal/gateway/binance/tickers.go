package binance

import (
	"context"

	"skewbot/internal/market"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
)

// Tickers24h returns the full 24h price-change universe. Quote volumes are
// decimal so the scanner can sort without float drift.
func (s *Source) Tickers24h(ctx context.Context) ([]market.Ticker, error) {
	var out []market.Ticker
	err := s.transport.Do(ctx, func(ctx context.Context, client *futures.Client) error {
		raw, err := client.NewListPriceChangeStatsService().Do(ctx)
		if err != nil {
			return err
		}
		out = make([]market.Ticker, 0, len(raw))
		for _, item := range raw {
			if item == nil {
				continue
			}
			volume, err := decimal.NewFromString(item.QuoteVolume)
			if err != nil {
				volume = decimal.Zero
			}
			out = append(out, market.Ticker{
				Symbol:      item.Symbol,
				LastPrice:   parseFloat(item.LastPrice),
				ChangePct:   parseFloat(item.PriceChangePercent),
				QuoteVolume: volume,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PerpetualSymbols lists the symbols eligible for scanning: trading USDT
// perpetual contracts.
func (s *Source) PerpetualSymbols(ctx context.Context) (map[string]bool, error) {
	var allowed map[string]bool
	err := s.transport.Do(ctx, func(ctx context.Context, client *futures.Client) error {
		info, err := client.NewExchangeInfoService().Do(ctx)
		if err != nil {
			return err
		}
		allowed = make(map[string]bool, len(info.Symbols))
		for _, sym := range info.Symbols {
			if sym.ContractType != "PERPETUAL" || sym.Status != "TRADING" {
				continue
			}
			if sym.QuoteAsset != "USDT" {
				continue
			}
			allowed[sym.Symbol] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allowed, nil
}
