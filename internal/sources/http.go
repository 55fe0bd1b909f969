// Package sources implements the eight thin per-provider adapters the
// orchestration fabric dispatches through (coingecko, coinmarketcap,
// etherscan, github, defillama, thegraph, coinglass, binance). Each wraps httpBase with
// its own base URL, auth scheme, and response shape; transformation
// logic is intentionally routine and provider-specific, per spec §1.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dataforge/gateway/internal/core"
)

const maxResponseBytes = 5 * 1024 * 1024

// httpBase is the shared request/response plumbing every REST-style
// adapter embeds: context-scoped timeout, response-size cap, and
// DataSourceError classification on failure.
type httpBase struct {
	name       string
	baseURL    string
	client     *http.Client
	timeout    time.Duration
	authHeader func(*http.Request)
}

func newHTTPBase(name, baseURL string, timeoutMs int, authHeader func(*http.Request)) httpBase {
	timeout := time.Duration(timeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return httpBase{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{},
		timeout:    timeout,
		authHeader: authHeader,
	}
}

// getJSON issues a GET against path with query params and decodes the
// JSON response into out, classifying failures into the adapter error
// taxonomy.
func (b httpBase) getJSON(ctx context.Context, path string, query map[string]string, out interface{}) *core.DataSourceError {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	u := b.baseURL + path
	if len(query) > 0 {
		q := url.Values{}
		for k, v := range query {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return core.NewDataSourceError(b.name, core.KindTransport, "build request: "+err.Error(), err)
	}
	req.Header.Set("Accept", "application/json")
	if b.authHeader != nil {
		b.authHeader(req)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return core.NewDataSourceError(b.name, core.KindTimeout, "request timed out", err)
		}
		return core.NewDataSourceError(b.name, core.KindTransport, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return core.NewDataSourceError(b.name, core.KindTransport, "read response: "+err.Error(), err)
	}

	if kind, ok := statusKind(resp.StatusCode); ok {
		return core.NewDataSourceError(b.name, kind, fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(string(body), 300)), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return core.NewDataSourceError(b.name, core.KindDecode, "decode response: "+err.Error(), err)
	}
	return nil
}

// postJSON issues a POST with a JSON-encoded body (used for GraphQL
// endpoints, where the query travels in the request body rather than
// the URL) and decodes the JSON response into out.
func (b httpBase) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) *core.DataSourceError {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return core.NewDataSourceError(b.name, core.KindDecode, "encode request: "+err.Error(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, strings.NewReader(string(encoded)))
	if err != nil {
		return core.NewDataSourceError(b.name, core.KindTransport, "build request: "+err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if b.authHeader != nil {
		b.authHeader(req)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return core.NewDataSourceError(b.name, core.KindTimeout, "request timed out", err)
		}
		return core.NewDataSourceError(b.name, core.KindTransport, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return core.NewDataSourceError(b.name, core.KindTransport, "read response: "+err.Error(), err)
	}
	if kind, ok := statusKind(resp.StatusCode); ok {
		return core.NewDataSourceError(b.name, kind, fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(string(body), 300)), nil)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return core.NewDataSourceError(b.name, core.KindDecode, "decode response: "+err.Error(), err)
	}
	return nil
}

func statusKind(status int) (core.ErrorKind, bool) {
	switch {
	case status == http.StatusTooManyRequests:
		return core.KindRateLimit, true
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return core.KindAuth, true
	case status == http.StatusNotFound:
		return core.KindNotFound, true
	case status >= 500:
		return core.KindTransport, true
	case status >= 400:
		return core.KindDecode, true
	default:
		return "", false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
