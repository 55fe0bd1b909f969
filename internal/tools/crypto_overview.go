package tools

import (
	"fmt"
	"strings"

	"github.com/dataforge/gateway/internal/core"
)

// majorAssets need no chain/token_address to disambiguate; everything
// else is presumed multi-chain until proven otherwise, grounded in the
// original's disambiguation warning for CryptoOverviewTool.execute().
var majorAssets = map[string]bool{
	"BTC": true, "ETH": true, "SOL": true, "BNB": true, "XRP": true,
	"ADA": true, "DOGE": true, "TRX": true, "AVAX": true, "LTC": true,
}

func cryptoOverviewEntry() *RegistryEntry {
	facade := &Facade{
		ToolName:    "crypto_overview",
		Description: "Aggregated token overview: basic info, market data, supply, holders, social, sector, and developer activity.",
		DisambiguationCheck: func(input map[string]interface{}) string {
			symbol, _ := input["symbol"].(string)
			_, hasChain := input["chain"]
			_, hasToken := input["token_address"]
			if symbol != "" && !majorAssets[symbol] && !hasChain && !hasToken {
				return fmt.Sprintf("symbol %q is ambiguous across chains; specify chain or token_address for precise results", symbol)
			}
			return ""
		},
		Capabilities: []Capability{
			{
				Name: "basic",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					return buildSymbolRequest(input, "/coins/info", "basic")
				},
			},
			{
				Name:            "market",
				CrossCheck:      true,
				CrossCheckField: "price",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					return buildSymbolRequest(input, "/coins/market", "market")
				},
			},
			{
				Name: "supply",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					return buildSymbolRequest(input, "/coins/supply", "supply")
				},
			},
			{
				Name: "holders",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					chain, _ := input["chain"].(string)
					token, _ := input["token_address"].(string)
					if chain == "" || token == "" {
						return core.FetchRequest{}, fmt.Errorf("holder data requires chain and token_address")
					}
					return core.FetchRequest{
						Endpoint: "/token/holders",
						DataType: "holders",
						Symbol:   asSymbol(input),
						Params:   map[string]interface{}{"chain": chain, "token_address": token},
					}, nil
				},
			},
			{
				Name: "social",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					return buildSymbolRequest(input, "/coins/social", "social")
				},
			},
			{
				Name: "sector",
				BuildRequest: func(input, _ map[string]interface{}) (core.FetchRequest, error) {
					return buildSymbolRequest(input, "/coins/sector", "sector")
				},
			},
			{
				Name:      "dev_activity",
				DependsOn: []string{"basic"},
				BuildRequest: func(input, prior map[string]interface{}) (core.FetchRequest, error) {
					basic, ok := prior["basic"].(map[string]interface{})
					if !ok {
						return core.FetchRequest{}, fmt.Errorf("dev_activity requires basic info (unavailable)")
					}
					repo := extractGitHubURL(basic)
					if repo == "" {
						return core.FetchRequest{}, fmt.Errorf("no github repository found in basic info")
					}
					return core.FetchRequest{
						Endpoint: "/repos/activity",
						DataType: "dev_activity",
						Symbol:   asSymbol(input),
						Params:   map[string]interface{}{"repo": repo},
					}, nil
				},
			},
		},
	}

	return &RegistryEntry{
		Name:        facade.ToolName,
		Description: facade.Description,
		Endpoint:    "/tools/crypto_overview",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []string{"symbol"},
			"properties": map[string]interface{}{
				"symbol":         map[string]interface{}{"type": "string"},
				"chain":          map[string]interface{}{"type": "string"},
				"token_address":  map[string]interface{}{"type": "string"},
				"include_fields": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "string", "enum": []string{"all", "basic", "market", "supply", "holders", "social", "sector", "dev_activity"}},
				},
			},
		},
		OutputSchema: map[string]interface{}{"type": "object", "description": "Envelope with data.basic/market/supply/holders/social/sector/dev_activity"},
		Examples: []map[string]interface{}{
			{"symbol": "BTC", "include_fields": []string{"basic", "market"}},
		},
		Capabilities: capabilityNames(facade),
		Freshness:    Freshness{TypicalTTLSeconds: 300, AsOfSemantics: "per-capability as_of_utc, market refreshed every 60s"},
		Limitations:  []string{"holders requires chain and token_address", "dev_activity requires a discoverable github repository in basic info"},
		CostHints:    map[string]interface{}{"upstream_calls_per_invocation": "1-7 depending on include_fields"},
		facade:       facade,
	}
}

func buildSymbolRequest(input map[string]interface{}, endpoint, dataType string) (core.FetchRequest, error) {
	symbol := asSymbol(input)
	if symbol == "" {
		return core.FetchRequest{}, fmt.Errorf("symbol is required")
	}
	params := map[string]interface{}{"symbol": symbol}
	if chain, ok := input["chain"].(string); ok && chain != "" {
		params["chain"] = chain
	}
	if token, ok := input["token_address"].(string); ok && token != "" {
		params["token_address"] = token
	}
	return core.FetchRequest{Endpoint: endpoint, DataType: dataType, Symbol: symbol, Params: params}, nil
}

func asSymbol(input map[string]interface{}) string {
	s, _ := input["symbol"].(string)
	return s
}

// extractGitHubURL mirrors the original's _extract_github_url: pulls a
// github.com link out of a basic-info payload's homepage/links field.
func extractGitHubURL(basic map[string]interface{}) string {
	candidates := []string{}
	if homepage, ok := basic["homepage"].(string); ok {
		candidates = append(candidates, homepage)
	}
	if links, ok := basic["links"].([]interface{}); ok {
		for _, l := range links {
			if s, ok := l.(string); ok {
				candidates = append(candidates, s)
			}
		}
	}
	for _, c := range candidates {
		if strings.Contains(c, "github.com") {
			return c
		}
	}
	return ""
}

func capabilityNames(f *Facade) []string {
	names := make([]string, len(f.Capabilities))
	for i, c := range f.Capabilities {
		names[i] = c.Name
	}
	return names
}
