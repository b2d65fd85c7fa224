package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		base  string
		quote string
	}{
		{"BTC/USDT", "BTC", "USDT"},
		{"btc/usdt", "BTC", "USDT"},
		{"  eth/usdt  ", "ETH", "USDT"},
		{"BTC/USDT:USDT", "BTC", "USDT"},
		{"ETHUSDT", "ETH", "USDT"},
		{"SOLBTC", "SOL", "BTC"},
		{"1000PEPEUSDT", "1000PEPE", "USDT"},
		{"USDT", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		got := Parse(tt.in)
		assert.Equal(t, tt.base, got.Base, "base of %q", tt.in)
		assert.Equal(t, tt.quote, got.Quote, "quote of %q", tt.in)
	}
}

func TestForms(t *testing.T) {
	s := Parse("btc/usdt")
	assert.Equal(t, "BTC/USDT", s.Internal())
	assert.Equal(t, "BTCUSDT", s.Binance())
	assert.True(t, s.IsUSDT())
	assert.False(t, Parse("SOLBTC").IsUSDT())
	assert.Equal(t, "", Symbol{}.Binance())
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"btc/usdt", "BTCUSDT", " eth/usdt ", "", "mystery"})
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "MYSTERY"}, got)
	assert.Nil(t, NormalizeList(nil))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("BTC/USDT"))
	assert.True(t, IsValid("ETHUSDT"))
	assert.False(t, IsValid("mystery"))
	assert.False(t, IsValid(""))
}
