package sources

import (
	"context"
	"fmt"

	"github.com/dataforge/gateway/internal/core"
)

// Etherscan and its sibling explorers (bscscan, basescan, polygonscan,
// arbiscan) share one API shape; explorerBaseURLs lists each chain's
// base URL. Etherscan implements holders lookups for crypto_overview.
// FetchRaw always queries the base URL fixed at construction
// (descriptor.BaseURL, else the Ethereum explorer); it does not pick an
// explorer from the request's chain param.
type Etherscan struct {
	core.BaseAdapter
	http   httpBase
	apiKey string
}

var explorerBaseURLs = map[string]string{
	"ethereum": "https://api.etherscan.io/v2/api",
	"bsc":      "https://api.bscscan.com/api",
	"base":     "https://api.basescan.org/api",
	"polygon":  "https://api.polygonscan.com/api",
	"arbitrum": "https://api.arbiscan.io/api",
}

func NewEtherscan(descriptor core.SourceDescriptor, apiKey string) *Etherscan {
	base := descriptor.BaseURL
	if base == "" {
		base = explorerBaseURLs["ethereum"]
	}
	e := &Etherscan{apiKey: apiKey}
	e.BaseAdapter = core.NewBaseAdapter("etherscan", descriptor)
	e.http = newHTTPBase("etherscan", base, descriptor.TimeoutMs, nil)
	return e
}

func (e *Etherscan) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	if e.apiKey == "" {
		return nil, core.NewDataSourceError(e.Name(), core.KindAuth, "missing etherscan API key", nil)
	}
	token, _ := params["token_address"].(string)
	if token == "" {
		return nil, core.NewDataSourceError(e.Name(), core.KindDecode, "token_address required", nil)
	}

	query := map[string]string{
		"module":  "token",
		"action":  "tokenholderlist",
		"contractaddress": token,
		"apikey":  e.apiKey,
	}
	var raw map[string]interface{}
	if err := e.http.getJSON(ctx, "", query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (e *Etherscan) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	if dataType != "holders" {
		return nil, core.NewDataSourceError(e.Name(), core.KindDecode, fmt.Sprintf("unsupported data type %q", dataType), nil)
	}
	body, ok := raw.(map[string]interface{})
	if !ok {
		return nil, core.NewDataSourceError(e.Name(), core.KindDecode, "unexpected response shape", nil)
	}
	result, _ := body["result"].([]interface{})
	return map[string]interface{}{
		"holder_count": len(result),
		"top_holders":  result,
	}, nil
}

func (e *Etherscan) Close() error { return nil }
