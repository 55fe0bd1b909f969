package tools

import (
	"fmt"

	"github.com/dataforge/gateway/internal/core"
)

// onchainTVLFeesEntry grounds spec §8 scenario 4: protocol TVL marked
// for cross-check on "tvl_usd", plus a fees capability that falls back
// from defillama to thegraph without cross-check. The default tvl chain
// lists only defillama, so tvl runs as a single-source fetch (the
// thegraph adapter serves fees only).
func onchainTVLFeesEntry() *RegistryEntry {
	facade := &Facade{
		ToolName:    "onchain_tvl_fees",
		Description: "Protocol total value locked and fee revenue across chains.",
		Capabilities: []Capability{
			{
				Name:            "tvl",
				CrossCheck:      true,
				CrossCheckField: "tvl_usd",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					protocol, err := protocolSlug(input)
					if err != nil {
						return core.FetchRequest{}, err
					}
					return core.FetchRequest{
						Endpoint: "/protocol/tvl", DataType: "tvl", Symbol: asSymbol(input),
						Params: map[string]interface{}{"protocol": protocol},
					}, nil
				},
			},
			{
				Name: "fees",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					protocol, err := protocolSlug(input)
					if err != nil {
						return core.FetchRequest{}, err
					}
					window := "24h"
					if w, ok := input["window"].(string); ok && w != "" {
						window = w
					}
					return core.FetchRequest{
						Endpoint: "/protocol/fees", DataType: "fees", Symbol: asSymbol(input),
						Params: map[string]interface{}{"protocol": protocol, "window": window},
					}, nil
				},
			},
		},
	}

	return &RegistryEntry{
		Name:        facade.ToolName,
		Description: facade.Description,
		Endpoint:    "/tools/onchain_tvl_fees",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []string{"protocol"},
			"properties": map[string]interface{}{
				"symbol":         map[string]interface{}{"type": "string"},
				"protocol":       map[string]interface{}{"type": "string", "description": "DefiLlama protocol slug"},
				"window":         map[string]interface{}{"type": "string", "enum": []string{"24h", "7d", "30d"}, "description": "forwarded as a request param; the fees adapters report 24h fees (fees_usd_24h) whatever the window"},
				"include_fields": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
		},
		OutputSchema: map[string]interface{}{"type": "object", "description": "Envelope with data.tvl/fees"},
		Examples: []map[string]interface{}{
			{"protocol": "aave", "window": "24h"},
		},
		Capabilities: capabilityNames(facade),
		Freshness:    Freshness{TypicalTTLSeconds: 300, AsOfSemantics: "tvl TTL 300s, fees TTL 900s"},
		Limitations:  []string{"protocol slug must match the upstream provider's naming"},
		CostHints:    map[string]interface{}{"upstream_calls_per_invocation": "1-2 depending on include_fields"},
		facade:       facade,
	}
}

func protocolSlug(input map[string]interface{}) (string, error) {
	protocol, _ := input["protocol"].(string)
	if protocol == "" {
		return "", fmt.Errorf("protocol is required")
	}
	return protocol, nil
}
