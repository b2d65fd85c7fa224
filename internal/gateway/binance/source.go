package binance

import (
	"context"
	"strconv"
	"strings"

	"skewbot/internal/transport"
)

// Transport abstracts the fallback orchestrator so tests can substitute a
// direct runner.
type Transport interface {
	Do(ctx context.Context, call transport.Call) error
}

// Source is the metric client for the Binance USD-M futures data endpoints.
// Every request travels through the orchestrator and therefore inherits the
// mirror/proxy fallback behavior.
type Source struct {
	transport Transport
}

func New(t Transport) *Source {
	return &Source{transport: t}
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
