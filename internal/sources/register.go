package sources

import (
	"github.com/dataforge/gateway/internal/config"
	"github.com/dataforge/gateway/internal/core"
)

// RegisterAll constructs and registers one adapter per distinct source
// name referenced anywhere in cfg's source chains. Credentials are
// resolved from cfg.Credentials; an adapter whose provider requires a
// key (coinmarketcap, etherscan, thegraph, coinglass) still registers
// without one; it fails its own requests at call time with a
// KindAuth DataSourceError, letting the fallback engine move on.
func RegisterAll(registry *core.Registry, cfg *config.Config) {
	for _, d := range cfg.AllDescriptors() {
		adapter := buildAdapter(d, cfg)
		if adapter != nil {
			registry.Register(adapter)
		}
	}
}

func buildAdapter(d core.SourceDescriptor, cfg *config.Config) core.Adapter {
	switch d.Name {
	case "coingecko":
		return NewCoinGecko(d, cfg.Credentials.APIKey("coingecko"))
	case "coinmarketcap":
		return NewCoinMarketCap(d, cfg.Credentials.APIKey("coinmarketcap"))
	case "etherscan":
		return NewEtherscan(d, cfg.Credentials.APIKey("etherscan"))
	case "github":
		return NewGitHub(d, cfg.Credentials.APIKey("github"))
	case "defillama":
		return NewDefiLlama(d)
	case "thegraph":
		return NewTheGraph(d, cfg.Credentials.APIKey("thegraph"))
	case "coinglass":
		return NewCoinGlass(d, cfg.Credentials.APIKey("coinglass"))
	case "binance":
		return NewBinance(d)
	default:
		return nil
	}
}
