package report

import (
	"fmt"
	"strings"
	"time"

	"skewbot/internal/market"

	"github.com/shopspring/decimal"
)

func fmtPct(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

func fmtRatio(value float64) string {
	return fmt.Sprintf("%.2fx", value)
}

func runLine(runAt time.Time) string {
	return "Run: " + runAt.UTC().Format("2006-01-02 15:04 UTC")
}

func metricLine(label, period string, rec market.MetricRecord) string {
	return fmt.Sprintf("%s %s: long %s / short %s (%s)",
		label, period, fmtPct(rec.LongPct), fmtPct(rec.ShortPct), fmtRatio(rec.Ratio))
}

// Daily renders the primary report: one block per pair with the three ratio
// variants.
func Daily(runAt time.Time, period string, pairs []market.PairMetrics) string {
	lines := []string{
		fmt.Sprintf("Binance Futures Long/Short (%s)", period),
		runLine(runAt),
	}
	for _, item := range pairs {
		lines = append(lines, "",
			item.Symbol,
			metricLine("Accounts", period, item.Accounts),
			metricLine("Positions", period, item.Positions),
			metricLine("Global", period, item.Global),
		)
	}
	return strings.Join(lines, "\n")
}

// ScanParts renders the skew ranking, split into batches so a single
// Telegram message never grows past its size limit. When more than one part
// is produced the header carries a "(part i/n)" suffix.
func ScanParts(runAt time.Time, period string, ranked []market.RankedSymbol, batchSize int) []string {
	if len(ranked) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 10
	}

	var batches [][]market.RankedSymbol
	for start := 0; start < len(ranked); start += batchSize {
		end := start + batchSize
		if end > len(ranked) {
			end = len(ranked)
		}
		batches = append(batches, ranked[start:end])
	}

	parts := make([]string, 0, len(batches))
	for i, batch := range batches {
		header := "Top long/short skews (USDT perpetual)"
		if len(batches) > 1 {
			header = fmt.Sprintf("%s (part %d/%d)", header, i+1, len(batches))
		}
		lines := []string{header, runLine(runAt)}
		for _, entry := range batch {
			lines = append(lines, "",
				fmt.Sprintf("%s: skew %sx", entry.Symbol, entry.Skew.StringFixed(2)),
				metricLine("Accounts", period, entry.Accounts),
				fmt.Sprintf("24h: last %.4f, change %+.2f%%", entry.LastPrice, entry.ChangePct),
			)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return parts
}

// NoSkewNotice is sent when a scan finds nothing above the threshold, so a
// silent run is distinguishable from a broken one.
func NoSkewNotice(runAt time.Time, minSkew decimal.Decimal, candidates int) string {
	return strings.Join([]string{
		"Top long/short skews (USDT perpetual)",
		runLine(runAt),
		"",
		fmt.Sprintf("No symbols exceed %sx among top %d by volume", minSkew.StringFixed(1), candidates),
	}, "\n")
}

// Console is the short stdout summary printed alongside delivery.
func Console(ranked []market.RankedSymbol) string {
	lines := []string{"Top long/short skews (USDT perpetual):"}
	for _, entry := range ranked {
		lines = append(lines, fmt.Sprintf("- %s: skew %sx (accounts %s, volume %s)",
			entry.Symbol, entry.Skew.StringFixed(2),
			fmtRatio(entry.Accounts.Ratio), entry.QuoteVolume.StringFixed(0)))
	}
	return strings.Join(lines, "\n")
}
