package tools

import (
	"github.com/dataforge/gateway/internal/core"
)

// derivativesHubEntry grounds the original's DerivativesHubTool
// (funding rate, open interest, long/short ratio), reduced to the two
// venues this gateway has adapters for: binance as primary, coinglass
// (cross-exchange aggregated) as fallback/secondary. funding_rate is
// cross-checked on "current_funding_rate" since it's the capability the
// original exercises a venue fallback against most (its OKX-fallback
// test); open_interest and long_short_ratio fall back without
// cross-check, matching market_microstructure's orderbook treatment.
func derivativesHubEntry() *RegistryEntry {
	facade := &Facade{
		ToolName:    "derivatives_hub",
		Description: "Derivatives data hub: funding rate, open interest, and long/short ratio for a perpetual futures pair.",
		Capabilities: []Capability{
			{
				Name:            "funding_rate",
				CrossCheck:      true,
				CrossCheckField: "current_funding_rate",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					pair, err := tradingPair(input)
					if err != nil {
						return core.FetchRequest{}, err
					}
					return core.FetchRequest{
						Endpoint: "/fapi/v1/fundingRate", DataType: "funding_rate", Symbol: asSymbol(input),
						Params: map[string]interface{}{"pair": pair, "symbol": pair},
					}, nil
				},
			},
			{
				Name: "open_interest",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					pair, err := tradingPair(input)
					if err != nil {
						return core.FetchRequest{}, err
					}
					return core.FetchRequest{
						Endpoint: "/fapi/v1/openInterest", DataType: "open_interest", Symbol: asSymbol(input),
						Params: map[string]interface{}{"pair": pair, "symbol": pair},
					}, nil
				},
			},
			{
				Name: "long_short_ratio",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					pair, err := tradingPair(input)
					if err != nil {
						return core.FetchRequest{}, err
					}
					return core.FetchRequest{
						Endpoint: "/futures/data/globalLongShortAccountRatio", DataType: "long_short_ratio", Symbol: asSymbol(input),
						Params: map[string]interface{}{"pair": pair, "symbol": pair},
					}, nil
				},
			},
		},
	}

	return &RegistryEntry{
		Name:        facade.ToolName,
		Description: facade.Description,
		Endpoint:    "/tools/derivatives_hub",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []string{"symbol", "quote"},
			"properties": map[string]interface{}{
				"symbol": map[string]interface{}{"type": "string"},
				"quote":  map[string]interface{}{"type": "string", "description": "quote asset, e.g. USDT"},
				"include_fields": map[string]interface{}{
					"type":    "array",
					"items":   map[string]interface{}{"type": "string", "enum": []string{"funding_rate", "open_interest", "long_short_ratio"}},
					"default": []string{"funding_rate", "open_interest", "long_short_ratio"},
				},
			},
		},
		OutputSchema: map[string]interface{}{"type": "object", "description": "Envelope with data.funding_rate/open_interest/long_short_ratio"},
		Examples: []map[string]interface{}{
			{"symbol": "BTC", "quote": "USDT", "include_fields": []string{"funding_rate"}},
		},
		Capabilities: capabilityNames(facade),
		Freshness:    Freshness{TypicalTTLSeconds: 300, AsOfSemantics: "all three capabilities share a 300s TTL"},
		Limitations:  []string{"liquidations, basis curve, term structure, and options surface are not yet wired: no adapter in this gateway covers Deribit or an aggregated liquidations feed"},
		CostHints:    map[string]interface{}{"upstream_calls_per_invocation": "1-3 depending on include_fields"},
		facade:       facade,
	}
}
