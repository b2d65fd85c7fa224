package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorGathersAllThreeRatios(t *testing.T) {
	src := &fakeSource{
		ratios: map[string]float64{"BTCUSDT": 4, "ETHUSDT": 1},
	}

	c := NewCollector(src, "1d")
	got, err := c.Collect(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	btc := got[0]
	assert.Equal(t, "BTCUSDT", btc.Symbol)
	assert.InDelta(t, 80.0, btc.Accounts.LongPct, 1e-9)
	assert.InDelta(t, 20.0, btc.Accounts.ShortPct, 1e-9)
	assert.Equal(t, btc.Accounts.Ratio, btc.Positions.Ratio)
	assert.Equal(t, btc.Accounts.Ratio, btc.Global.Ratio)

	eth := got[1]
	assert.InDelta(t, 50.0, eth.Accounts.LongPct, 1e-9)
}

func TestCollectorAbortsOnFirstFailure(t *testing.T) {
	src := &fakeSource{
		ratios: map[string]float64{"BTCUSDT": 2},
		// ETHUSDT has no ratio, so the source reports an empty response.
	}

	c := NewCollector(src, "1d")
	got, err := c.Collect(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	require.Error(t, err)
	assert.Nil(t, got)

	var empty *EmptyResponseError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "ETHUSDT", empty.Symbol)
	assert.Contains(t, err.Error(), "ETHUSDT")
}

func TestCollectorRejectsEmptyPairList(t *testing.T) {
	c := NewCollector(&fakeSource{}, "1d")
	_, err := c.Collect(context.Background(), nil)
	assert.Error(t, err)
}
