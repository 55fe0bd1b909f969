package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/dataforge/gateway/internal/core"
)

// Binance is the primary source for market_microstructure and the
// funding-rate/open-interest/long-short-ratio capabilities of
// derivatives_hub. orderbook and the derivatives endpoints are plain
// REST snapshots against the USD-M futures API; ticker opens a
// short-lived websocket connection and reads a single frame rather
// than a subscription — the core treats every fetch as one
// request/response, so streaming is deliberately out of scope (spec
// non-goal).
type Binance struct {
	core.BaseAdapter
	http    httpBase
	futures httpBase
	wsBase  string
}

func NewBinance(descriptor core.SourceDescriptor) *Binance {
	base := descriptor.BaseURL
	futuresBase := "https://fapi.binance.com"
	if base == "" {
		base = "https://api.binance.com"
	} else {
		// An overridden BaseURL (tests, or a self-hosted proxy) is
		// assumed to serve both the spot and futures paths.
		futuresBase = base
	}
	b := &Binance{wsBase: "wss://stream.binance.com:9443/ws"}
	b.BaseAdapter = core.NewBaseAdapter("binance", descriptor)
	b.http = newHTTPBase("binance", base, descriptor.TimeoutMs, nil)
	b.futures = newHTTPBase("binance", futuresBase, descriptor.TimeoutMs, nil)
	return b
}

func (b *Binance) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	pair, _ := params["pair"].(string)
	if pair == "" {
		return nil, core.NewDataSourceError(b.Name(), core.KindDecode, "pair required", nil)
	}

	switch endpoint {
	case "/ticker":
		return b.fetchTicker(ctx, pair)
	case "/orderbook":
		depth := 20
		if d, ok := params["depth"].(int); ok && d > 0 {
			depth = d
		}
		var raw map[string]interface{}
		query := map[string]string{"symbol": strings.ToUpper(pair), "limit": fmt.Sprintf("%d", depth)}
		if err := b.http.getJSON(ctx, "/api/v3/depth", query, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	case "/fapi/v1/fundingRate":
		var raw []map[string]interface{}
		query := map[string]string{"symbol": strings.ToUpper(pair), "limit": "1"}
		if err := b.futures.getJSON(ctx, "/fapi/v1/fundingRate", query, &raw); err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			return nil, core.NewDataSourceError(b.Name(), core.KindDecode, "empty funding rate response", nil)
		}
		return raw[len(raw)-1], nil
	case "/fapi/v1/openInterest":
		var raw map[string]interface{}
		query := map[string]string{"symbol": strings.ToUpper(pair)}
		if err := b.futures.getJSON(ctx, "/fapi/v1/openInterest", query, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	case "/futures/data/globalLongShortAccountRatio":
		var raw []map[string]interface{}
		query := map[string]string{"symbol": strings.ToUpper(pair), "period": "5m", "limit": "1"}
		if err := b.futures.getJSON(ctx, "/futures/data/globalLongShortAccountRatio", query, &raw); err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			return nil, core.NewDataSourceError(b.Name(), core.KindDecode, "empty long/short ratio response", nil)
		}
		return raw[len(raw)-1], nil
	default:
		return nil, core.NewDataSourceError(b.Name(), core.KindDecode, "unsupported endpoint "+endpoint, nil)
	}
}

func (b *Binance) fetchTicker(ctx context.Context, pair string) (interface{}, *core.DataSourceError) {
	stream := strings.ToLower(pair) + "@ticker"
	conn, _, err := websocket.Dial(ctx, b.wsBase+"/"+stream, nil)
	if err != nil {
		return nil, core.NewDataSourceError(b.Name(), core.KindTransport, "websocket dial: "+err.Error(), err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	var frame map[string]interface{}
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		if ctx.Err() != nil {
			return nil, core.NewDataSourceError(b.Name(), core.KindTimeout, "websocket read timed out", err)
		}
		return nil, core.NewDataSourceError(b.Name(), core.KindTransport, "websocket read: "+err.Error(), err)
	}
	return frame, nil
}

func (b *Binance) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	body, ok := raw.(map[string]interface{})
	if !ok {
		return nil, core.NewDataSourceError(b.Name(), core.KindDecode, "unexpected response shape", nil)
	}

	switch dataType {
	case "ticker":
		return map[string]interface{}{
			"price":      parsePrice(body["c"]),
			"volume_24h": parsePrice(body["v"]),
			"bid":        parsePrice(body["b"]),
			"ask":        parsePrice(body["a"]),
		}, nil
	case "orderbook":
		return map[string]interface{}{
			"bids": body["bids"],
			"asks": body["asks"],
		}, nil
	case "funding_rate":
		return map[string]interface{}{
			"exchange":             "binance",
			"current_funding_rate": parsePrice(body["fundingRate"]),
			"next_funding_time":    body["fundingTime"],
		}, nil
	case "open_interest":
		return map[string]interface{}{
			"exchange":      "binance",
			"open_interest": parsePrice(body["openInterest"]),
			"timestamp":     body["time"],
		}, nil
	case "long_short_ratio":
		return map[string]interface{}{
			"exchange":            "binance",
			"long_account_ratio":  parsePrice(body["longAccount"]),
			"short_account_ratio": parsePrice(body["shortAccount"]),
			"long_short_ratio":    parsePrice(body["longShortRatio"]),
			"timestamp":           body["timestamp"],
		}, nil
	default:
		return nil, core.NewDataSourceError(b.Name(), core.KindDecode, fmt.Sprintf("unsupported data type %q", dataType), nil)
	}
}

// parsePrice handles Binance's habit of returning numeric fields as
// strings on some endpoints and JSON numbers on others.
func parsePrice(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		var f float64
		if err := json.Unmarshal([]byte(s), &f); err == nil {
			return f
		}
	}
	return v
}

func (b *Binance) Close() error { return nil }
