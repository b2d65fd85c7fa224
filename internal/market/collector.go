package market

import (
	"context"
	"fmt"

	"skewbot/internal/logger"
)

// Collector gathers the three ratio variants for the configured pairs,
// sequentially. The primary report is all-or-nothing: the first failing pair
// aborts the run so a partial report is never delivered.
type Collector struct {
	source Source
	period string
}

func NewCollector(source Source, period string) *Collector {
	if period == "" {
		period = "1d"
	}
	return &Collector{source: source, period: period}
}

func (c *Collector) Collect(ctx context.Context, pairs []string) ([]PairMetrics, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no pairs configured")
	}

	out := make([]PairMetrics, 0, len(pairs))
	for i, pair := range pairs {
		accounts, err := c.source.TopAccountRatio(ctx, pair, c.period)
		if err != nil {
			return nil, fmt.Errorf("collecting %s accounts ratio: %w", pair, err)
		}
		positions, err := c.source.TopPositionRatio(ctx, pair, c.period)
		if err != nil {
			return nil, fmt.Errorf("collecting %s positions ratio: %w", pair, err)
		}
		global, err := c.source.GlobalAccountRatio(ctx, pair, c.period)
		if err != nil {
			return nil, fmt.Errorf("collecting %s global ratio: %w", pair, err)
		}
		out = append(out, PairMetrics{
			Symbol:    pair,
			Accounts:  accounts,
			Positions: positions,
			Global:    global,
		})
		logger.Infof("collected %d/%d %s", i+1, len(pairs), pair)
	}
	return out, nil
}
