package sources

import (
	"context"
	"net/http"
	"strings"

	"github.com/dataforge/gateway/internal/core"
)

// GitHub serves repository activity metrics for crypto_overview's
// dev_activity capability, derived from a repo URL discovered in basic
// info.
type GitHub struct {
	core.BaseAdapter
	http  httpBase
	token string
}

func NewGitHub(descriptor core.SourceDescriptor, token string) *GitHub {
	base := descriptor.BaseURL
	if base == "" {
		base = "https://api.github.com"
	}
	g := &GitHub{token: token}
	g.BaseAdapter = core.NewBaseAdapter("github", descriptor)
	g.http = newHTTPBase("github", base, descriptor.TimeoutMs, g.setAuth)
	return g
}

func (g *GitHub) setAuth(req *http.Request) {
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
}

func (g *GitHub) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	repoURL, _ := params["repo"].(string)
	ownerRepo := strings.TrimPrefix(repoURL, "https://github.com/")
	ownerRepo = strings.TrimSuffix(ownerRepo, "/")
	if ownerRepo == "" {
		return nil, core.NewDataSourceError(g.Name(), core.KindDecode, "repo URL required", nil)
	}

	var raw map[string]interface{}
	if err := g.http.getJSON(ctx, "/repos/"+ownerRepo, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (g *GitHub) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	body, ok := raw.(map[string]interface{})
	if !ok {
		return nil, core.NewDataSourceError(g.Name(), core.KindDecode, "unexpected response shape", nil)
	}
	return map[string]interface{}{
		"stars":        body["stargazers_count"],
		"forks":        body["forks_count"],
		"open_issues":  body["open_issues_count"],
		"pushed_at":    body["pushed_at"],
	}, nil
}

func (g *GitHub) Close() error { return nil }
