package tools

import "github.com/dataforge/gateway/internal/core"

// macroHubEntry grounds spec §C.1's macro surface: policy rates and FX
// reference rates, both sourced without a cross-check chain configured
// by default (a single macro data provider per capability).
func macroHubEntry() *RegistryEntry {
	facade := &Facade{
		ToolName:    "macro_hub",
		Description: "Macro context: central bank policy rates and FX reference rates.",
		Capabilities: []Capability{
			{
				Name: "rates",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					region, _ := input["region"].(string)
					if region == "" {
						region = "us"
					}
					return core.FetchRequest{
						Endpoint: "/macro/rates", DataType: "rates", Symbol: region,
						Params: map[string]interface{}{"region": region},
					}, nil
				},
			},
			{
				Name: "fx",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					base, _ := input["base"].(string)
					if base == "" {
						base = "USD"
					}
					quote, _ := input["quote"].(string)
					if quote == "" {
						quote = "EUR"
					}
					return core.FetchRequest{
						Endpoint: "/macro/fx", DataType: "fx", Symbol: base + quote,
						Params: map[string]interface{}{"base": base, "quote": quote},
					}, nil
				},
			},
		},
	}

	return &RegistryEntry{
		Name:        facade.ToolName,
		Description: facade.Description,
		Endpoint:    "/tools/macro_hub",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"region":         map[string]interface{}{"type": "string", "description": "central bank region code, default us"},
				"base":           map[string]interface{}{"type": "string", "description": "FX base currency, default USD"},
				"quote":          map[string]interface{}{"type": "string", "description": "FX quote currency, default EUR"},
				"include_fields": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
		},
		OutputSchema: map[string]interface{}{"type": "object", "description": "Envelope with data.rates/fx"},
		Examples: []map[string]interface{}{
			{"region": "us", "base": "USD", "quote": "EUR"},
		},
		Capabilities: capabilityNames(facade),
		Freshness:    Freshness{TypicalTTLSeconds: 1800, AsOfSemantics: "rates TTL 3600s, fx TTL 1800s"},
		Limitations:  []string{"rates and fx are both served from coingecko's exchange_rates table; region, base and quote are not sent upstream"},
		CostHints:    map[string]interface{}{"upstream_calls_per_invocation": "1-2 depending on include_fields"},
		facade:       facade,
	}
}
