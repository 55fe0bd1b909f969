package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge/gateway/internal/core"
)

func TestGetJSONDecodesSuccessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": 100.5}`))
	}))
	defer srv.Close()

	b := newHTTPBase("coingecko", srv.URL, 0, nil)
	var out map[string]interface{}
	derr := b.getJSON(context.Background(), "/coins/markets", map[string]string{"vs_currency": "usd"}, &out)
	require.Nil(t, derr)
	assert.Equal(t, 100.5, out["price"])
}

func TestGetJSONClassifiesRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`rate limited`))
	}))
	defer srv.Close()

	b := newHTTPBase("coingecko", srv.URL, 0, nil)
	var out map[string]interface{}
	derr := b.getJSON(context.Background(), "/x", nil, &out)
	require.NotNil(t, derr)
	assert.Equal(t, core.KindRateLimit, derr.Kind)
}

func TestGetJSONClassifiesAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	b := newHTTPBase("coinmarketcap", srv.URL, 0, nil)
	var out map[string]interface{}
	derr := b.getJSON(context.Background(), "/x", nil, &out)
	require.NotNil(t, derr)
	assert.Equal(t, core.KindAuth, derr.Kind)
}

func TestGetJSONClassifiesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	b := newHTTPBase("etherscan", srv.URL, 0, nil)
	var out map[string]interface{}
	derr := b.getJSON(context.Background(), "/x", nil, &out)
	require.NotNil(t, derr)
	assert.Equal(t, core.KindNotFound, derr.Kind)
}

func TestGetJSONClassifiesServerErrorAsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	b := newHTTPBase("defillama", srv.URL, 0, nil)
	var out map[string]interface{}
	derr := b.getJSON(context.Background(), "/x", nil, &out)
	require.NotNil(t, derr)
	assert.Equal(t, core.KindTransport, derr.Kind)
}

func TestGetJSONAppliesAuthHeader(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Api-Key")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	b := newHTTPBase("coinmarketcap", srv.URL, 0, func(req *http.Request) {
		req.Header.Set("X-Api-Key", "secret")
	})
	var out map[string]interface{}
	derr := b.getJSON(context.Background(), "/x", nil, &out)
	require.Nil(t, derr)
	assert.Equal(t, "secret", gotHeader)
}

func TestPostJSONSendsBodyAndDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"data": {"fees": 42}}`))
	}))
	defer srv.Close()

	b := newHTTPBase("thegraph", srv.URL, 0, nil)
	var out map[string]interface{}
	derr := b.postJSON(context.Background(), "/subgraphs/name/protocol-fees", map[string]string{"query": "{ fees }"}, &out)
	require.Nil(t, derr)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, 42.0, data["fees"])
}

func TestTruncateLeavesShortStringsUnchanged(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 300))
}

func TestTruncateCutsLongStrings(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	out := truncate(string(long), 300)
	assert.Len(t, out, 300+len("...(truncated)"))
}
