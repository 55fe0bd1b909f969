package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dataforge/gateway/internal/core"
)

// CoinGecko serves basic/market/supply/social/sector/news/rates/fx data
// for crypto_overview, sentiment_aggregator, and macro_hub. It is the
// primary source for every capability it covers except holders and
// dev_activity, which belong to chain explorers and github.
type CoinGecko struct {
	core.BaseAdapter
	http   httpBase
	apiKey string
}

func NewCoinGecko(descriptor core.SourceDescriptor, apiKey string) *CoinGecko {
	base := descriptor.BaseURL
	if base == "" {
		base = "https://api.coingecko.com/api/v3"
	}
	c := &CoinGecko{apiKey: apiKey}
	c.BaseAdapter = core.NewBaseAdapter("coingecko", descriptor)
	c.http = newHTTPBase("coingecko", base, descriptor.TimeoutMs, c.setAuth)
	return c
}

func (c *CoinGecko) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", c.apiKey)
	}
}

func (c *CoinGecko) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	symbol, _ := params["symbol"].(string)
	query := map[string]string{"ids": strings.ToLower(symbol), "vs_currency": "usd"}

	var raw map[string]interface{}
	if err := c.http.getJSON(ctx, resolveCoinGeckoPath(endpoint), query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func resolveCoinGeckoPath(endpoint string) string {
	switch endpoint {
	case "/coins/info":
		return "/coins/markets"
	case "/coins/market":
		return "/coins/markets"
	case "/coins/supply":
		return "/coins/markets"
	case "/coins/social":
		return "/coins/markets"
	case "/coins/sector":
		return "/coins/categories"
	case "/news":
		return "/news"
	case "/macro/rates", "/macro/fx":
		return "/exchange_rates"
	default:
		return endpoint
	}
}

func (c *CoinGecko) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	body, ok := raw.(map[string]interface{})
	if !ok {
		return nil, core.NewDataSourceError(c.Name(), core.KindDecode, "unexpected response shape", nil)
	}

	switch dataType {
	case "basic":
		return map[string]interface{}{
			"name":     body["name"],
			"symbol":   body["symbol"],
			"homepage": body["homepage"],
		}, nil
	case "market":
		return map[string]interface{}{
			"price":      body["current_price"],
			"market_cap": body["market_cap"],
			"volume_24h": body["total_volume"],
		}, nil
	case "supply":
		return map[string]interface{}{
			"circulating_supply": body["circulating_supply"],
			"total_supply":       body["total_supply"],
			"max_supply":         body["max_supply"],
		}, nil
	case "social":
		return map[string]interface{}{
			"twitter_followers": body["twitter_followers"],
			"reddit_subscribers": body["reddit_subscribers"],
		}, nil
	case "sector":
		return map[string]interface{}{"categories": body["categories"]}, nil
	case "news":
		return map[string]interface{}{"headlines": body["data"]}, nil
	case "rates", "fx":
		return map[string]interface{}{"rates": body["rates"]}, nil
	default:
		return nil, core.NewDataSourceError(c.Name(), core.KindDecode, fmt.Sprintf("unsupported data type %q", dataType), nil)
	}
}

func (c *CoinGecko) Close() error { return nil }
