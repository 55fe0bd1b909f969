package sources

import (
	"context"
	"net/http"

	"github.com/dataforge/gateway/internal/core"
)

// TheGraph is the secondary fees source for onchain_tvl_fees, queried
// over GraphQL rather than REST.
type TheGraph struct {
	core.BaseAdapter
	http   httpBase
	apiKey string
}

func NewTheGraph(descriptor core.SourceDescriptor, apiKey string) *TheGraph {
	base := descriptor.BaseURL
	if base == "" {
		base = "https://gateway.thegraph.com/api"
	}
	t := &TheGraph{apiKey: apiKey}
	t.BaseAdapter = core.NewBaseAdapter("thegraph", descriptor)
	t.http = newHTTPBase("thegraph", base, descriptor.TimeoutMs, t.setAuth)
	return t
}

func (t *TheGraph) setAuth(req *http.Request) {
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

func (t *TheGraph) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	if t.apiKey == "" {
		return nil, core.NewDataSourceError(t.Name(), core.KindAuth, "missing thegraph API key", nil)
	}
	protocol, _ := params["protocol"].(string)

	query := `query($protocol: String!) {
		protocol(id: $protocol) { totalFeesUSD } }`

	var raw struct {
		Data map[string]interface{} `json:"data"`
	}
	req := graphqlRequest{Query: query, Variables: map[string]interface{}{"protocol": protocol}}
	if err := t.http.postJSON(ctx, "/subgraphs/name/protocol-fees", req, &raw); err != nil {
		return nil, err
	}
	return raw.Data, nil
}

func (t *TheGraph) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	if dataType != "fees" {
		return nil, core.NewDataSourceError(t.Name(), core.KindDecode, "unsupported data type "+dataType, nil)
	}
	body, ok := raw.(map[string]interface{})
	if !ok {
		return nil, core.NewDataSourceError(t.Name(), core.KindDecode, "unexpected response shape", nil)
	}
	protocol, _ := body["protocol"].(map[string]interface{})
	return map[string]interface{}{"fees_usd_24h": protocol["totalFeesUSD"]}, nil
}

func (t *TheGraph) Close() error { return nil }
