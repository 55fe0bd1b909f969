package sources

import (
	"context"
	"fmt"

	"github.com/dataforge/gateway/internal/core"
)

// DefiLlama is the primary source for onchain_tvl_fees's tvl and fees
// capabilities.
type DefiLlama struct {
	core.BaseAdapter
	http httpBase
}

func NewDefiLlama(descriptor core.SourceDescriptor) *DefiLlama {
	base := descriptor.BaseURL
	if base == "" {
		base = "https://api.llama.fi"
	}
	d := &DefiLlama{}
	d.BaseAdapter = core.NewBaseAdapter("defillama", descriptor)
	d.http = newHTTPBase("defillama", base, descriptor.TimeoutMs, nil)
	return d
}

func (d *DefiLlama) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	protocol, _ := params["protocol"].(string)
	if protocol == "" {
		return nil, core.NewDataSourceError(d.Name(), core.KindDecode, "protocol required", nil)
	}

	var path string
	switch endpoint {
	case "/protocol/tvl":
		path = "/tvl/" + protocol
	case "/protocol/fees":
		path = "/summary/fees/" + protocol
	default:
		return nil, core.NewDataSourceError(d.Name(), core.KindDecode, "unsupported endpoint "+endpoint, nil)
	}

	var raw interface{}
	if err := d.http.getJSON(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (d *DefiLlama) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	switch dataType {
	case "tvl":
		if v, ok := raw.(float64); ok {
			return map[string]interface{}{"tvl_usd": v}, nil
		}
		body, _ := raw.(map[string]interface{})
		return map[string]interface{}{"tvl_usd": body["tvl"]}, nil
	case "fees":
		body, ok := raw.(map[string]interface{})
		if !ok {
			return nil, core.NewDataSourceError(d.Name(), core.KindDecode, "unexpected response shape", nil)
		}
		return map[string]interface{}{"fees_usd_24h": body["total24h"]}, nil
	default:
		return nil, core.NewDataSourceError(d.Name(), core.KindDecode, fmt.Sprintf("unsupported data type %q", dataType), nil)
	}
}

func (d *DefiLlama) Close() error { return nil }
