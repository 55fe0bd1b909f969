package config

import "os"

// defaultTTLPolicy mirrors the original ttl_policies.yaml: a
// capability-indexed TTL table per tool plus a "default" fallback.
func defaultTTLPolicy() map[string]map[string]int {
	return map[string]map[string]int{
		"default": {"default": 300},
		"crypto_overview": {
			"basic":        3600,
			"market":       60,
			"supply":       1800,
			"holders":      1800,
			"social":       900,
			"sector":       3600,
			"dev_activity": 3600,
		},
		"market_microstructure": {
			"ticker":    15,
			"orderbook": 5,
		},
		"derivatives_hub": {
			"funding_rate":     300,
			"open_interest":    300,
			"long_short_ratio": 300,
		},
		"onchain_tvl_fees": {
			"tvl":  300,
			"fees": 900,
		},
		"sentiment_aggregator": {
			"news":       600,
			"social_buzz": 600,
		},
		"macro_hub": {
			"rates": 3600,
			"fx":    1800,
		},
	}
}

// defaultSourceChains mirrors the original data_sources.yaml: the
// fallback chain configured for each (tool, capability), priority
// PRIMARY < SECONDARY < TERTIARY < FALLBACK.
func defaultSourceChains() map[string]map[string][]SourceConfig {
	return map[string]map[string][]SourceConfig{
		"crypto_overview": {
			"basic": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
				{Name: "coinmarketcap", Priority: 1, TimeoutMs: 10000, RateLimitPerMin: 30, RequiresAPIKey: true},
			},
			"market": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
				{Name: "coinmarketcap", Priority: 1, TimeoutMs: 10000, RateLimitPerMin: 30, RequiresAPIKey: true},
			},
			"supply": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
			},
			"holders": {
				{Name: "etherscan", Priority: 0, TimeoutMs: 15000, RateLimitPerMin: 5, RequiresAPIKey: true},
			},
			"social": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
			},
			"sector": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
			},
			"dev_activity": {
				{Name: "github", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 60, RequiresAPIKey: true},
			},
		},
		"market_microstructure": {
			"ticker": {
				{Name: "binance", Priority: 0, TimeoutMs: 5000, RateLimitPerMin: 1200},
				{Name: "coingecko", Priority: 1, TimeoutMs: 10000, RateLimitPerMin: 50},
			},
			"orderbook": {
				{Name: "binance", Priority: 0, TimeoutMs: 5000, RateLimitPerMin: 1200},
			},
		},
		"derivatives_hub": {
			"funding_rate": {
				{Name: "binance", Priority: 0, TimeoutMs: 5000, RateLimitPerMin: 1200},
				{Name: "coinglass", Priority: 1, TimeoutMs: 10000, RateLimitPerMin: 30, RequiresAPIKey: true},
			},
			"open_interest": {
				{Name: "binance", Priority: 0, TimeoutMs: 5000, RateLimitPerMin: 1200},
				{Name: "coinglass", Priority: 1, TimeoutMs: 10000, RateLimitPerMin: 30, RequiresAPIKey: true},
			},
			"long_short_ratio": {
				{Name: "binance", Priority: 0, TimeoutMs: 5000, RateLimitPerMin: 1200},
				{Name: "coinglass", Priority: 1, TimeoutMs: 10000, RateLimitPerMin: 30, RequiresAPIKey: true},
			},
		},
		"onchain_tvl_fees": {
			"tvl": {
				{Name: "defillama", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 300},
			},
			"fees": {
				{Name: "defillama", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 300},
				{Name: "thegraph", Priority: 1, TimeoutMs: 15000, RateLimitPerMin: 60, RequiresAPIKey: true},
			},
		},
		"sentiment_aggregator": {
			"news": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
			},
			"social_buzz": {
				{Name: "coinglass", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 30, RequiresAPIKey: true},
			},
		},
		"macro_hub": {
			"rates": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
			},
			"fx": {
				{Name: "coingecko", Priority: 0, TimeoutMs: 10000, RateLimitPerMin: 50},
			},
		},
	}
}

// defaultThresholds mirrors the original's conflict_thresholds block.
// Keyed by the dotted field path a façade passes as CrossCheckField
// (core.Resolver looks thresholds up by that same field name), not by
// the YAML-style "<field>_diff_percent" label the original config used.
func defaultThresholds() map[string]float64 {
	return map[string]float64{
		"price":                0.5,
		"volume":               1.0,
		"tvl_usd":              1.0,
		"current_funding_rate": 10.0,
	}
}

func defaultToolsEnabled() map[string]bool {
	return map[string]bool{
		"crypto_overview":       true,
		"market_microstructure": true,
		"derivatives_hub":       true,
		"onchain_tvl_fees":      true,
		"sentiment_aggregator":  true,
		"macro_hub":             true,
	}
}

// resolveCredentials reads <PROVIDER>_API_KEY / <PROVIDER>_API_SECRET
// environment variables, per the stable schema in spec §6, mirroring
// the original's get_api_key mapping.
func resolveCredentials() CredentialsConfig {
	providers := []string{
		"coingecko", "coinmarketcap", "etherscan", "bscscan", "basescan",
		"polygonscan", "arbiscan", "github", "messari", "fred", "cryptopanic",
		"coinglass", "whale_alert", "thegraph", "xai",
	}

	keys := make(map[string]string, len(providers))
	secrets := make(map[string]string, len(providers))
	for _, p := range providers {
		envKey := envName(p) + "_API_KEY"
		if v := os.Getenv(envKey); v != "" {
			keys[p] = v
		}
		if v := os.Getenv(envName(p) + "_API_SECRET"); v != "" {
			secrets[p] = v
		}
	}
	// GitHub and a few providers use a bare token env var historically.
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		keys["github"] = v
	}
	return NewCredentialsConfig(keys, secrets)
}

func envName(provider string) string {
	out := make([]byte, 0, len(provider))
	for _, r := range provider {
		if r >= 'a' && r <= 'z' {
			out = append(out, byte(r-'a'+'A'))
		} else {
			out = append(out, byte(r))
		}
	}
	return string(out)
}
