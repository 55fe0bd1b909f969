package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dataforge/gateway/internal/core"
)

// CoinMarketCap is the secondary source for basic and market
// capabilities, cross-checked against coingecko on price.
type CoinMarketCap struct {
	core.BaseAdapter
	http   httpBase
	apiKey string
}

func NewCoinMarketCap(descriptor core.SourceDescriptor, apiKey string) *CoinMarketCap {
	base := descriptor.BaseURL
	if base == "" {
		base = "https://pro-api.coinmarketcap.com/v2"
	}
	c := &CoinMarketCap{apiKey: apiKey}
	c.BaseAdapter = core.NewBaseAdapter("coinmarketcap", descriptor)
	c.http = newHTTPBase("coinmarketcap", base, descriptor.TimeoutMs, c.setAuth)
	return c
}

func (c *CoinMarketCap) setAuth(req *http.Request) {
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)
}

func (c *CoinMarketCap) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	if c.apiKey == "" {
		return nil, core.NewDataSourceError(c.Name(), core.KindAuth, "missing coinmarketcap API key", nil)
	}
	symbol, _ := params["symbol"].(string)
	var raw map[string]interface{}
	if err := c.http.getJSON(ctx, "/cryptocurrency/quotes/latest", map[string]string{"symbol": symbol}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *CoinMarketCap) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	body, ok := raw.(map[string]interface{})
	if !ok {
		return nil, core.NewDataSourceError(c.Name(), core.KindDecode, "unexpected response shape", nil)
	}
	data, _ := body["data"].(map[string]interface{})

	switch dataType {
	case "basic":
		return map[string]interface{}{"name": data["name"], "symbol": data["symbol"]}, nil
	case "market":
		quote, _ := data["quote"].(map[string]interface{})
		usd, _ := quote["USD"].(map[string]interface{})
		return map[string]interface{}{
			"price":      usd["price"],
			"market_cap": usd["market_cap"],
			"volume_24h": usd["volume_24h"],
		}, nil
	default:
		return nil, core.NewDataSourceError(c.Name(), core.KindDecode, fmt.Sprintf("unsupported data type %q", dataType), nil)
	}
}

func (c *CoinMarketCap) Close() error { return nil }
