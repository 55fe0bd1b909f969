package tools

import (
	"fmt"

	"github.com/dataforge/gateway/internal/core"
)

// sentimentAggregatorEntry grounds spec §C.1's macro/sentiment surface:
// news headlines and social buzz scoring, neither cross-checked since
// each source covers disjoint content rather than the same fact.
func sentimentAggregatorEntry() *RegistryEntry {
	facade := &Facade{
		ToolName:    "sentiment_aggregator",
		Description: "News headlines and social buzz scoring for an asset.",
		Capabilities: []Capability{
			{
				Name: "news",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					symbol := asSymbol(input)
					if symbol == "" {
						return core.FetchRequest{}, fmt.Errorf("symbol is required")
					}
					return core.FetchRequest{
						Endpoint: "/news", DataType: "news", Symbol: symbol,
						Params: map[string]interface{}{"symbol": symbol},
					}, nil
				},
			},
			{
				Name: "social_buzz",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					symbol := asSymbol(input)
					if symbol == "" {
						return core.FetchRequest{}, fmt.Errorf("symbol is required")
					}
					return core.FetchRequest{
						Endpoint: "/social/buzz", DataType: "social_buzz", Symbol: symbol,
						Params: map[string]interface{}{"symbol": symbol},
					}, nil
				},
			},
		},
	}

	return &RegistryEntry{
		Name:        facade.ToolName,
		Description: facade.Description,
		Endpoint:    "/tools/sentiment_aggregator",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []string{"symbol"},
			"properties": map[string]interface{}{
				"symbol":         map[string]interface{}{"type": "string"},
				"include_fields": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
		},
		OutputSchema: map[string]interface{}{"type": "object", "description": "Envelope with data.news/social_buzz"},
		Examples: []map[string]interface{}{
			{"symbol": "ETH"},
		},
		Capabilities: capabilityNames(facade),
		Freshness:    Freshness{TypicalTTLSeconds: 600, AsOfSemantics: "both capabilities TTL 600s"},
		Limitations:  []string{"social_buzz requires a coinglass API key; omitted without one, not retried"},
		CostHints:    map[string]interface{}{"upstream_calls_per_invocation": "1-2 depending on include_fields"},
		facade:       facade,
	}
}
