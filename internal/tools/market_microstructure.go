package tools

import (
	"fmt"

	"github.com/dataforge/gateway/internal/core"
)

// marketMicrostructureEntry grounds spec §8 scenario 3: a ticker
// capability cross-checked between binance and coingecko on "price",
// plus an orderbook capability fetched without cross-check (a single
// exchange's own book has no meaningful second source to diff against).
// The coingecko adapter has no "ticker" data type, so its leg of the
// ticker cross-check returns a decode error and the ticker is served
// by binance alone.
func marketMicrostructureEntry() *RegistryEntry {
	facade := &Facade{
		ToolName:    "market_microstructure",
		Description: "Real-time ticker and order book depth for a trading pair.",
		Capabilities: []Capability{
			{
				Name:            "ticker",
				CrossCheck:      true,
				CrossCheckField: "price",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					pair, err := tradingPair(input)
					if err != nil {
						return core.FetchRequest{}, err
					}
					return core.FetchRequest{
						Endpoint: "/ticker", DataType: "ticker", Symbol: asSymbol(input),
						Params: map[string]interface{}{"pair": pair},
					}, nil
				},
			},
			{
				Name: "orderbook",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					pair, err := tradingPair(input)
					if err != nil {
						return core.FetchRequest{}, err
					}
					depth := 20
					switch d := input["depth"].(type) {
					case int:
						if d > 0 {
							depth = d
						}
					case float64:
						if d > 0 {
							depth = int(d)
						}
					}
					return core.FetchRequest{
						Endpoint: "/orderbook", DataType: "orderbook", Symbol: asSymbol(input),
						Params: map[string]interface{}{"pair": pair, "depth": depth},
					}, nil
				},
			},
		},
	}

	return &RegistryEntry{
		Name:        facade.ToolName,
		Description: facade.Description,
		Endpoint:    "/tools/market_microstructure",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []string{"symbol", "quote"},
			"properties": map[string]interface{}{
				"symbol":         map[string]interface{}{"type": "string"},
				"quote":          map[string]interface{}{"type": "string", "description": "quote asset, e.g. USDT"},
				"depth":          map[string]interface{}{"type": "integer"},
				"include_fields": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
		},
		OutputSchema: map[string]interface{}{"type": "object", "description": "Envelope with data.ticker/orderbook"},
		Examples: []map[string]interface{}{
			{"symbol": "BTC", "quote": "USDT"},
		},
		Capabilities: capabilityNames(facade),
		Freshness:    Freshness{TypicalTTLSeconds: 15, AsOfSemantics: "ticker TTL 15s, orderbook TTL 5s"},
		Limitations:  []string{"orderbook depth capped at the upstream exchange's maximum book size"},
		CostHints:    map[string]interface{}{"upstream_calls_per_invocation": "1-2 depending on include_fields"},
		facade:       facade,
	}
}

func tradingPair(input map[string]interface{}) (string, error) {
	symbol := asSymbol(input)
	quote, _ := input["quote"].(string)
	if symbol == "" || quote == "" {
		return "", fmt.Errorf("symbol and quote are required")
	}
	return symbol + quote, nil
}
