package sources

import (
	"context"
	"net/http"

	"github.com/dataforge/gateway/internal/core"
)

// CoinGlass serves sentiment_aggregator's social_buzz capability and
// backs derivatives_hub as the fallback for funding rate, open
// interest, and long/short ratio when binance is unavailable — it
// aggregates the same metrics across exchanges rather than reporting
// a single venue's view.
type CoinGlass struct {
	core.BaseAdapter
	http   httpBase
	apiKey string
}

func NewCoinGlass(descriptor core.SourceDescriptor, apiKey string) *CoinGlass {
	base := descriptor.BaseURL
	if base == "" {
		base = "https://open-api.coinglass.com/public/v2"
	}
	c := &CoinGlass{apiKey: apiKey}
	c.BaseAdapter = core.NewBaseAdapter("coinglass", descriptor)
	c.http = newHTTPBase("coinglass", base, descriptor.TimeoutMs, c.setAuth)
	return c
}

func (c *CoinGlass) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("coinglassSecret", c.apiKey)
	}
}

// coinglassPaths maps the endpoint names the tool façades address (the
// same names Binance uses, since both can appear in one fallback
// chain) onto CoinGlass's own REST paths.
var coinglassPaths = map[string]string{
	"/social/buzz": "/buzz",
	"/fapi/v1/fundingRate":                      "/futures/funding_rate",
	"/fapi/v1/openInterest":                     "/futures/open_interest",
	"/futures/data/globalLongShortAccountRatio": "/futures/long_short_ratio",
}

func (c *CoinGlass) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	if c.apiKey == "" {
		return nil, core.NewDataSourceError(c.Name(), core.KindAuth, "missing coinglass API key", nil)
	}
	path, ok := coinglassPaths[endpoint]
	if !ok {
		return nil, core.NewDataSourceError(c.Name(), core.KindDecode, "unsupported endpoint "+endpoint, nil)
	}
	symbol, _ := params["symbol"].(string)
	var raw map[string]interface{}
	if err := c.http.getJSON(ctx, path, map[string]string{"symbol": symbol}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *CoinGlass) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	body, ok := raw.(map[string]interface{})
	if !ok {
		return nil, core.NewDataSourceError(c.Name(), core.KindDecode, "unexpected response shape", nil)
	}
	data, _ := body["data"].(map[string]interface{})

	switch dataType {
	case "social_buzz":
		return map[string]interface{}{
			"buzz_score":   data["buzzScore"],
			"mentions_24h": data["mentions24h"],
		}, nil
	case "funding_rate":
		return map[string]interface{}{
			"exchange":             "aggregated",
			"current_funding_rate": data["fundingRate"],
			"next_funding_time":    data["nextFundingTime"],
		}, nil
	case "open_interest":
		return map[string]interface{}{
			"exchange":      "aggregated",
			"open_interest": data["openInterest"],
			"timestamp":     data["updateTime"],
		}, nil
	case "long_short_ratio":
		return map[string]interface{}{
			"exchange":         "aggregated",
			"long_ratio":       data["longRate"],
			"short_ratio":      data["shortRate"],
			"long_short_ratio": data["longShortRatio"],
		}, nil
	default:
		return nil, core.NewDataSourceError(c.Name(), core.KindDecode, "unsupported data type "+dataType, nil)
	}
}

func (c *CoinGlass) Close() error { return nil }
