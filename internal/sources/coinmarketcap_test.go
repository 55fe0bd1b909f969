package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge/gateway/internal/core"
)

func TestCoinMarketCapFetchRawRequiresAPIKey(t *testing.T) {
	c := NewCoinMarketCap(core.SourceDescriptor{Name: "coinmarketcap"}, "")
	_, err := c.FetchRaw(context.Background(), "/cryptocurrency/quotes/latest", map[string]interface{}{"symbol": "BTC"})
	require.NotNil(t, err)
	assert.Equal(t, core.KindAuth, err.Kind)
}

func TestCoinMarketCapTransformMarketExtractsUSDQuote(t *testing.T) {
	c := NewCoinMarketCap(core.SourceDescriptor{Name: "coinmarketcap"}, "key")
	raw := map[string]interface{}{
		"data": map[string]interface{}{
			"name": "Bitcoin", "symbol": "BTC",
			"quote": map[string]interface{}{
				"USD": map[string]interface{}{"price": 101.0, "market_cap": 2e12, "volume_24h": 5e9},
			},
		},
	}
	out, err := c.Transform(raw, "market")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, 101.0, data["price"])
}

func TestCoinMarketCapTransformBasic(t *testing.T) {
	c := NewCoinMarketCap(core.SourceDescriptor{Name: "coinmarketcap"}, "key")
	raw := map[string]interface{}{"data": map[string]interface{}{"name": "Bitcoin", "symbol": "BTC"}}
	out, err := c.Transform(raw, "basic")
	require.Nil(t, err)
	data := out.(map[string]interface{})
	assert.Equal(t, "Bitcoin", data["name"])
}

func TestCoinMarketCapTransformUnsupportedDataType(t *testing.T) {
	c := NewCoinMarketCap(core.SourceDescriptor{Name: "coinmarketcap"}, "key")
	_, err := c.Transform(map[string]interface{}{}, "holders")
	require.NotNil(t, err)
	assert.Equal(t, core.KindDecode, err.Kind)
}
